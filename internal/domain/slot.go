package domain

import (
	"fmt"

	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// SlotID идентификатор временного окна, например "18:00-19:00"
// Каталог слотов фиксирован: часовые окна от открытия до закрытия зала,
// произвольные значения недопустимы
type SlotID string

// slotCatalog фиксированный каталог слотов в хронологическом порядке
var slotCatalog = buildCatalog()

func buildCatalog() []SlotID {
	slots := make([]SlotID, 0, ClosingHour-OpeningHour)
	for h := OpeningHour; h < ClosingHour; h++ {
		slots = append(slots, SlotID(fmt.Sprintf("%02d:00-%02d:00", h, h+1)))
	}
	return slots
}

// AllSlots возвращает все слоты каталога в хронологическом порядке
// Возвращается копия, чтобы вызывающий код не мог изменить каталог
func AllSlots() []SlotID {
	out := make([]SlotID, len(slotCatalog))
	copy(out, slotCatalog)
	return out
}

// SlotCount количество слотов в каталоге
func SlotCount() int {
	return len(slotCatalog)
}

// IsValidSlot проверяет, что значение принадлежит каталогу
func IsValidSlot(slot SlotID) bool {
	for _, s := range slotCatalog {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotIndex возвращает позицию слота в каталоге, -1 для неизвестного слота
func SlotIndex(slot SlotID) int {
	for i, s := range slotCatalog {
		if s == slot {
			return i
		}
	}
	return -1
}

// StartTime возвращает время начала слота
func (s SlotID) StartTime() types.TimeString {
	if len(s) < 5 {
		return ""
	}
	return types.TimeString(s[:5])
}

// EndTime возвращает время окончания слота
func (s SlotID) EndTime() types.TimeString {
	if len(s) < 11 {
		return ""
	}
	return types.TimeString(s[6:])
}

// String возвращает строковое представление
func (s SlotID) String() string {
	return string(s)
}
