package bookings

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActive(ctx context.Context, tenantID, memberID int64, date time.Time) (*domain.Booking, error)
	ListByMember(ctx context.Context, tenantID, memberID int64, since *time.Time) ([]*domain.Booking, error)
	Cancel(ctx context.Context, tenantID, memberID int64, date time.Time, reason string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, tenantID, memberID int64, date time.Time, status domain.BookingStatus) (*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
