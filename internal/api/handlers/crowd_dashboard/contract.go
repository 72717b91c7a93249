package crowd_dashboard

import (
	"context"
	"time"

	getSlotAvailability "github.com/m04kA/GMS-BookingService/internal/usecase/get_slot_availability"
)

type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *getSlotAvailability.Request) (*getSlotAvailability.Response, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
