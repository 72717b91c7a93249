package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings"
	bookingModels "github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
	"github.com/m04kA/GMS-BookingService/internal/token"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTokenMissing       = "отсутствует бронировочный токен"
	msgTokenInvalid       = "недействительный бронировочный токен"
	msgTokenExpired       = "срок действия бронировочной ссылки истёк"
	msgTokenWrongDay      = "бронировочная ссылка выписана на другой день"
	msgBookingNotFound    = "активная бронь на сегодня не найдена"
	msgCannotCancel       = "бронь уже завершена и не может быть отменена"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Token  string  `json:"token"`
	Reason *string `json:"reason,omitempty"`
}

type Handler struct {
	bookingsSvc  BookingsService
	validator    TokenValidator
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(bookingsSvc BookingsService, validator TokenValidator, timeProvider TimeProvider, logger Logger) *Handler {
	return &Handler{
		bookingsSvc:  bookingsSvc,
		validator:    validator,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Handle PATCH /api/v1/slots/book/cancel
// Самостоятельная отмена брони участником по той же ссылке, что и запись
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/book/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	now := h.timeProvider.Now()

	claims, err := h.validator.Validate(req.Token, nil, now)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrTokenMissing):
			h.logger.Warn("PATCH /slots/book/cancel - Token missing")
			handlers.RespondUnauthorized(w, msgTokenMissing)
		case errors.Is(err, token.ErrTokenExpired):
			h.logger.Warn("PATCH /slots/book/cancel - Token expired")
			handlers.RespondUnauthorized(w, msgTokenExpired)
		case errors.Is(err, token.ErrTokenDateMismatch):
			h.logger.Warn("PATCH /slots/book/cancel - Token date mismatch")
			handlers.RespondForbidden(w, msgTokenWrongDay)
		default:
			h.logger.Warn("PATCH /slots/book/cancel - Token invalid: %v", err)
			handlers.RespondUnauthorized(w, msgTokenInvalid)
		}
		return
	}

	reason := "отменено участником"
	if req.Reason != nil && *req.Reason != "" {
		reason = *req.Reason
	}

	result, err := h.bookingsSvc.Cancel(r.Context(), &bookingModels.CancelBookingRequest{
		TenantID:           claims.TenantID,
		MemberID:           claims.MemberID,
		Date:               claims.Date,
		CancellationReason: reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /slots/book/cancel - Booking not found: tenant=%d, member=%d", claims.TenantID, claims.MemberID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrCannotTransition):
			h.logger.Warn("PATCH /slots/book/cancel - Cannot cancel: tenant=%d, member=%d", claims.TenantID, claims.MemberID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /slots/book/cancel - Failed to cancel booking: tenant=%d, member=%d, error=%v",
				claims.TenantID, claims.MemberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/book/cancel - Booking cancelled: booking_id=%d, tenant=%d, member=%d",
		result.ID, claims.TenantID, claims.MemberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
