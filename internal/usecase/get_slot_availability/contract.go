package get_slot_availability

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveByDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.Booking, error)
}

// CapacityRepository интерфейс репозитория конфигурации вместимости
type CapacityRepository interface {
	GetByTenant(ctx context.Context, tenantID int64) (*domain.CapacityConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
