package reminder

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/service/advisor"
	"github.com/m04kA/GMS-BookingService/internal/usecase/place_booking"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListTenantIDs(ctx context.Context) ([]int64, error)
	ListMembersWithoutActiveBooking(ctx context.Context, tenantID int64, date time.Time) ([]domain.MemberRef, error)
}

// PatternAdvisor интерфейс подбора привычного слота
type PatternAdvisor interface {
	Pattern(ctx context.Context, tenantID, memberID int64, windowDays int) (*advisor.BookingPattern, error)
}

// BookingPlacer интерфейс создания брони (автобронь по привычке)
type BookingPlacer interface {
	Execute(ctx context.Context, req *place_booking.Request) (*place_booking.Response, error)
}

// TokenIssuer интерфейс выпуска бронировочных токенов
type TokenIssuer interface {
	Issue(tenantID, memberID int64, memberName string, date time.Time, now time.Time) (string, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	SendToMember(ctx context.Context, tenantID, memberID int64, message string) error
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
