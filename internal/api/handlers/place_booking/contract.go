package place_booking

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/token"
	placeBooking "github.com/m04kA/GMS-BookingService/internal/usecase/place_booking"
)

type PlaceBookingUseCase interface {
	Execute(ctx context.Context, req *placeBooking.Request) (*placeBooking.Response, error)
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
