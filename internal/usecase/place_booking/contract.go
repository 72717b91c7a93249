package place_booking

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/integrations/memberservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Upsert(ctx context.Context, booking *domain.Booking) (*domain.Booking, bool, error)
	CountActiveBySlot(ctx context.Context, tenantID int64, date time.Time, slot domain.SlotID) (int, error)
	IncrementOverflowWarnings(ctx context.Context, id int64) error
}

// CapacityRepository интерфейс репозитория конфигурации вместимости
type CapacityRepository interface {
	GetByTenant(ctx context.Context, tenantID int64) (*domain.CapacityConfig, error)
}

// MemberServiceClient интерфейс клиента для MemberService
type MemberServiceClient interface {
	GetMember(ctx context.Context, tenantID, memberID int64) (*memberservice.Member, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	SendToOwner(ctx context.Context, tenantID int64, message string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
