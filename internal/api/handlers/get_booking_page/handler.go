package get_booking_page

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/service/advisor"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings"
	"github.com/m04kA/GMS-BookingService/internal/token"
	getSlotAvailability "github.com/m04kA/GMS-BookingService/internal/usecase/get_slot_availability"
)

const (
	msgTokenMissing  = "отсутствует бронировочный токен"
	msgTokenInvalid  = "недействительный бронировочный токен"
	msgTokenExpired  = "срок действия бронировочной ссылки истёк"
	msgTokenWrongDay = "бронировочная ссылка выписана на другой день"
)

type Handler struct {
	availability AvailabilityUseCase
	bookingsSvc  BookingsService
	advisorSvc   AdvisorService
	validator    TokenValidator
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(
	availability AvailabilityUseCase,
	bookingsSvc BookingsService,
	advisorSvc AdvisorService,
	validator TokenValidator,
	timeProvider TimeProvider,
	logger Logger,
) *Handler {
	return &Handler{
		availability: availability,
		bookingsSvc:  bookingsSvc,
		advisorSvc:   advisorSvc,
		validator:    validator,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Handle GET /api/v1/slots/book?token=
// Страница бронирования: контекст участника, его текущая бронь и все слоты дня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	now := h.timeProvider.Now()

	claims, err := h.validator.Validate(tokenString, nil, now)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrTokenMissing):
			h.logger.Warn("GET /slots/book - Token missing")
			handlers.RespondUnauthorized(w, msgTokenMissing)
		case errors.Is(err, token.ErrTokenExpired):
			h.logger.Warn("GET /slots/book - Token expired")
			handlers.RespondUnauthorized(w, msgTokenExpired)
		case errors.Is(err, token.ErrTokenDateMismatch):
			h.logger.Warn("GET /slots/book - Token date mismatch")
			handlers.RespondForbidden(w, msgTokenWrongDay)
		default:
			h.logger.Warn("GET /slots/book - Token invalid: %v", err)
			handlers.RespondUnauthorized(w, msgTokenInvalid)
		}
		return
	}

	availability, err := h.availability.Execute(r.Context(), &getSlotAvailability.Request{
		TenantID: claims.TenantID,
		Date:     claims.Date,
	})
	if err != nil {
		h.logger.Error("GET /slots/book - Failed to load availability: tenant=%d, error=%v", claims.TenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	response := &BookingPageResponse{
		TenantID: claims.TenantID,
		Date:     claims.Date.Format(domain.DateFormat),
		Member: MemberContext{
			ID:   claims.MemberID,
			Name: claims.MemberName,
		},
		Slots: FromAvailabilitySlots(availability.Slots),
	}

	// Текущая бронь и привычный слот - вспомогательный контекст страницы,
	// их отсутствие или сбой не должны ломать ответ
	current, err := h.bookingsSvc.GetActive(r.Context(), claims.TenantID, claims.MemberID, claims.Date)
	if err == nil {
		response.CurrentBooking = current
	} else if !errors.Is(err, bookings.ErrBookingNotFound) {
		h.logger.Error("GET /slots/book - Failed to load current booking: tenant=%d, member=%d, error=%v",
			claims.TenantID, claims.MemberID, err)
	}

	lastSlot, err := h.advisorSvc.LastSlot(r.Context(), claims.TenantID, claims.MemberID)
	if err == nil {
		suggested := string(lastSlot)
		response.SuggestedSlot = &suggested
	} else if !errors.Is(err, advisor.ErrNoHistory) {
		h.logger.Error("GET /slots/book - Failed to load last slot: tenant=%d, member=%d, error=%v",
			claims.TenantID, claims.MemberID, err)
	}

	h.logger.Info("GET /slots/book - Booking page served: tenant=%d, member=%d, date=%s",
		claims.TenantID, claims.MemberID, response.Date)
	handlers.RespondJSON(w, http.StatusOK, response)
}
