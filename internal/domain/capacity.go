package domain

import "time"

// CapacityConfig конфигурация вместимости зала
// Принадлежит владельцу зала и редактируется внешним owner-сервисом,
// этот сервис только читает её (single database of record)
type CapacityConfig struct {
	TenantID        int64
	DefaultCapacity int

	// PerSlotOverrides переопределения вместимости для отдельных слотов
	// Ключи - значения каталога слотов
	PerSlotOverrides map[SlotID]int

	// CrowdFeatureEnabled публичная страница доступности включена для зала
	CrowdFeatureEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultCapacityConfig конфигурация по умолчанию для залов без настроек
func DefaultCapacityConfig(tenantID int64) *CapacityConfig {
	return &CapacityConfig{
		TenantID:        tenantID,
		DefaultCapacity: DefaultSlotCapacity,
	}
}

// ResolveCapacity returns the capacity for a slot: положительное переопределение
// слота, иначе положительный дефолт зала, иначе DefaultSlotCapacity
func (c *CapacityConfig) ResolveCapacity(slot SlotID) int {
	if c != nil {
		if override, ok := c.PerSlotOverrides[slot]; ok && override > 0 {
			return override
		}
		if c.DefaultCapacity > 0 {
			return c.DefaultCapacity
		}
	}
	return DefaultSlotCapacity
}
