package place_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/token"
	placeBooking "github.com/m04kA/GMS-BookingService/internal/usecase/place_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTokenMissing       = "отсутствует бронировочный токен"
	msgTokenInvalid       = "недействительный бронировочный токен"
	msgTokenExpired       = "срок действия бронировочной ссылки истёк"
	msgTokenWrongDay      = "бронировочная ссылка выписана на другой день"
	msgTokenAlreadyUsed   = "эта бронировочная ссылка уже использована"
	msgInvalidSlot        = "некорректный слот, ожидается формат HH:00-HH:00 из расписания"
	msgSlotInPast         = "этот слот сегодня уже закончился"
	msgMemberNotFound     = "участник не найден"
	msgPaymentPending     = "бронирование недоступно: есть неоплаченный счёт"
	msgSlotFull           = "слот заполнен, выберите другое время"
	msgServiceUnavailable = "сервис временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase      PlaceBookingUseCase
	validator    TokenValidator
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(useCase PlaceBookingUseCase, validator TokenValidator, timeProvider TimeProvider, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		validator:    validator,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Handle POST /api/v1/slots/book
// Самостоятельная запись участника по подписанной ссылке из рассылки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PlaceBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	now := h.timeProvider.Now()

	claims, err := h.validator.Validate(req.Token, nil, now)
	if err != nil {
		h.respondTokenError(w, "POST /slots/book", err)
		return
	}

	fingerprint := token.Fingerprint(req.Token)

	result, err := h.useCase.Execute(r.Context(), &placeBooking.Request{
		TenantID:         claims.TenantID,
		MemberID:         claims.MemberID,
		Date:             claims.Date,
		SlotID:           domain.SlotID(req.SlotID),
		Method:           domain.MethodSelfServiceLink,
		TokenFingerprint: &fingerprint,
	})
	if err != nil {
		switch {
		case errors.Is(err, placeBooking.ErrInvalidSlot), errors.Is(err, placeBooking.ErrInvalidInput):
			h.logger.Warn("POST /slots/book - Invalid slot: member=%d, slot=%s", claims.MemberID, req.SlotID)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, placeBooking.ErrSlotInPast), errors.Is(err, placeBooking.ErrInvalidDate):
			h.logger.Warn("POST /slots/book - Slot in past: member=%d, slot=%s", claims.MemberID, req.SlotID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, placeBooking.ErrMemberNotFound):
			h.logger.Warn("POST /slots/book - Member not found: tenant=%d, member=%d", claims.TenantID, claims.MemberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, placeBooking.ErrPaymentPending):
			h.logger.Warn("POST /slots/book - Payment pending: tenant=%d, member=%d", claims.TenantID, claims.MemberID)
			handlers.RespondForbidden(w, msgPaymentPending)

		case errors.Is(err, placeBooking.ErrTokenAlreadyUsed):
			h.logger.Warn("POST /slots/book - Token already used: tenant=%d, member=%d", claims.TenantID, claims.MemberID)
			handlers.RespondConflict(w, msgTokenAlreadyUsed)

		case errors.Is(err, placeBooking.ErrSlotFull):
			h.logger.Warn("POST /slots/book - Slot full: tenant=%d, slot=%s", claims.TenantID, req.SlotID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, placeBooking.ErrServiceUnavailable):
			h.logger.Error("POST /slots/book - Member service unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgServiceUnavailable)

		default:
			h.logger.Error("POST /slots/book - Failed to place booking: tenant=%d, member=%d, error=%v",
				claims.TenantID, claims.MemberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/book - Booking placed: booking_id=%d, tenant=%d, member=%d, slot=%s, rebooked=%t",
		result.ID, result.TenantID, result.MemberID, result.SlotID, result.IsUpdate)

	status := http.StatusCreated
	if result.IsUpdate {
		status = http.StatusOK
	}
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}

func (h *Handler) respondTokenError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, token.ErrTokenMissing):
		h.logger.Warn("%s - Token missing", route)
		handlers.RespondUnauthorized(w, msgTokenMissing)
	case errors.Is(err, token.ErrTokenExpired):
		h.logger.Warn("%s - Token expired", route)
		handlers.RespondUnauthorized(w, msgTokenExpired)
	case errors.Is(err, token.ErrTokenDateMismatch):
		h.logger.Warn("%s - Token date mismatch", route)
		handlers.RespondForbidden(w, msgTokenWrongDay)
	default:
		h.logger.Warn("%s - Token invalid: %v", route, err)
		handlers.RespondUnauthorized(w, msgTokenInvalid)
	}
}
