package get_booking_page

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	bookingModels "github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
	"github.com/m04kA/GMS-BookingService/internal/token"
	getSlotAvailability "github.com/m04kA/GMS-BookingService/internal/usecase/get_slot_availability"
)

type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *getSlotAvailability.Request) (*getSlotAvailability.Response, error)
}

type BookingsService interface {
	GetActive(ctx context.Context, tenantID, memberID int64, date time.Time) (*bookingModels.BookingResponse, error)
}

type AdvisorService interface {
	LastSlot(ctx context.Context, tenantID, memberID int64) (domain.SlotID, error)
}

type TokenValidator interface {
	Validate(tokenString string, expectedTenant *int64, asOf time.Time) (*token.Claims, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
