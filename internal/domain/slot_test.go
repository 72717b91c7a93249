package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSlots_Catalog(t *testing.T) {
	slots := AllSlots()

	require.Len(t, slots, 16)
	assert.Equal(t, SlotID("06:00-07:00"), slots[0])
	assert.Equal(t, SlotID("21:00-22:00"), slots[15])

	// Хронологический порядок без дыр
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].StartTime().IsBefore(slots[i].StartTime()),
			"slot %s must start before %s", slots[i-1], slots[i])
		assert.Equal(t, slots[i-1].EndTime(), slots[i].StartTime())
	}
}

func TestAllSlots_ReturnsCopy(t *testing.T) {
	slots := AllSlots()
	slots[0] = "hacked"

	assert.Equal(t, SlotID("06:00-07:00"), AllSlots()[0])
}

func TestIsValidSlot(t *testing.T) {
	assert.True(t, IsValidSlot("06:00-07:00"))
	assert.True(t, IsValidSlot("18:00-19:00"))
	assert.True(t, IsValidSlot("21:00-22:00"))

	assert.False(t, IsValidSlot(""))
	assert.False(t, IsValidSlot("05:00-06:00"))  // до открытия
	assert.False(t, IsValidSlot("22:00-23:00"))  // после закрытия
	assert.False(t, IsValidSlot("18:30-19:30"))  // не из каталога
	assert.False(t, IsValidSlot("18:00-20:00"))  // двухчасовое окно
	assert.False(t, IsValidSlot("18:00"))
}

func TestSlotIndex(t *testing.T) {
	assert.Equal(t, 0, SlotIndex("06:00-07:00"))
	assert.Equal(t, 12, SlotIndex("18:00-19:00"))
	assert.Equal(t, 15, SlotIndex("21:00-22:00"))
	assert.Equal(t, -1, SlotIndex("23:00-00:00"))
}

func TestSlotTimes(t *testing.T) {
	slot := SlotID("18:00-19:00")

	assert.Equal(t, "18:00", slot.StartTime().String())
	assert.Equal(t, "19:00", slot.EndTime().String())
}

func TestResolveCapacity(t *testing.T) {
	cfg := &CapacityConfig{
		TenantID:        1,
		DefaultCapacity: 15,
		PerSlotOverrides: map[SlotID]int{
			"18:00-19:00": 30,
			"06:00-07:00": 0, // некорректное переопределение игнорируется
		},
	}

	assert.Equal(t, 30, cfg.ResolveCapacity("18:00-19:00"))
	assert.Equal(t, 15, cfg.ResolveCapacity("07:00-08:00"))
	assert.Equal(t, 15, cfg.ResolveCapacity("06:00-07:00"))

	empty := &CapacityConfig{TenantID: 2}
	assert.Equal(t, DefaultSlotCapacity, empty.ResolveCapacity("18:00-19:00"))

	var nilCfg *CapacityConfig
	assert.Equal(t, DefaultSlotCapacity, nilCfg.ResolveCapacity("18:00-19:00"))
}
