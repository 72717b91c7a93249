package manual_booking

import (
	"context"
	"time"

	placeBooking "github.com/m04kA/GMS-BookingService/internal/usecase/place_booking"
)

type PlaceBookingUseCase interface {
	Execute(ctx context.Context, req *placeBooking.Request) (*placeBooking.Response, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
