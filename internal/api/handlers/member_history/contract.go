package member_history

import (
	"context"

	"github.com/m04kA/GMS-BookingService/internal/service/advisor"
	bookingModels "github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	MemberHistory(ctx context.Context, req *bookingModels.MemberHistoryRequest) (*bookingModels.BookingListResponse, error)
}

type AdvisorService interface {
	Pattern(ctx context.Context, tenantID, memberID int64, windowDays int) (*advisor.BookingPattern, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
