package advisor

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	HasAnyByMember(ctx context.Context, tenantID, memberID int64) (bool, error)
	ListByMember(ctx context.Context, tenantID, memberID int64, since *time.Time) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
