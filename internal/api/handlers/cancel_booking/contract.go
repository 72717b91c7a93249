package cancel_booking

import (
	"context"
	"time"

	bookingModels "github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
	"github.com/m04kA/GMS-BookingService/internal/token"
)

type BookingsService interface {
	Cancel(ctx context.Context, req *bookingModels.CancelBookingRequest) (*bookingModels.BookingResponse, error)
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
