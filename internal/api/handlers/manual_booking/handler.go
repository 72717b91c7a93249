package manual_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/domain"
	placeBooking "github.com/m04kA/GMS-BookingService/internal/usecase/place_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTenantID    = "некорректный ID зала"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSlot        = "некорректный слот, ожидается формат HH:00-HH:00 из расписания"
	msgDateInPast         = "дата бронирования уже прошла"
	msgMemberNotFound     = "участник не найден"
	msgSlotFull           = "слот заполнен"
	msgServiceUnavailable = "сервис временно недоступен, попробуйте позже"
)

// ManualBookingRequest HTTP request model
type ManualBookingRequest struct {
	MemberID int64   `json:"memberId"`
	SlotID   string  `json:"slotId"`
	Date     *string `json:"date,omitempty"` // по умолчанию - сегодня

	// WalkIn участник пришел без записи, владелец оформляет на месте
	WalkIn bool `json:"walkIn,omitempty"`
}

type Handler struct {
	useCase      PlaceBookingUseCase
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

func NewHandler(useCase PlaceBookingUseCase, timeProvider TimeProvider, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/slots/manual-book
// Ручное бронирование владельцем, включая дозаполнение прошедших слотов дня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil || tenantID <= 0 {
		h.logger.Warn("POST /tenants/{tenantId}/slots/manual-book - Invalid tenant ID")
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req ManualBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/%d/slots/manual-book - Invalid request body: %v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date := h.timeProvider.Now()
	if req.Date != nil {
		date, err = time.ParseInLocation(domain.DateFormat, *req.Date, h.location)
		if err != nil {
			h.logger.Warn("POST /tenants/%d/slots/manual-book - Invalid date: %s", tenantID, *req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	method := domain.MethodOwnerManual
	if req.WalkIn {
		method = domain.MethodWalkIn
	}

	result, err := h.useCase.Execute(r.Context(), &placeBooking.Request{
		TenantID: tenantID,
		MemberID: req.MemberID,
		Date:     date,
		SlotID:   domain.SlotID(req.SlotID),
		Method:   method,
	})
	if err != nil {
		switch {
		case errors.Is(err, placeBooking.ErrInvalidSlot), errors.Is(err, placeBooking.ErrInvalidInput):
			h.logger.Warn("POST /tenants/%d/slots/manual-book - Invalid input: member=%d, slot=%s, error=%v",
				tenantID, req.MemberID, req.SlotID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, placeBooking.ErrInvalidDate):
			h.logger.Warn("POST /tenants/%d/slots/manual-book - Date in past: member=%d", tenantID, req.MemberID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, placeBooking.ErrMemberNotFound):
			h.logger.Warn("POST /tenants/%d/slots/manual-book - Member not found: member=%d", tenantID, req.MemberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, placeBooking.ErrSlotFull):
			h.logger.Warn("POST /tenants/%d/slots/manual-book - Slot full: slot=%s", tenantID, req.SlotID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, placeBooking.ErrServiceUnavailable):
			h.logger.Error("POST /tenants/%d/slots/manual-book - Member service unavailable: %v", tenantID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgServiceUnavailable)

		default:
			h.logger.Error("POST /tenants/%d/slots/manual-book - Failed to place booking: member=%d, error=%v",
				tenantID, req.MemberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/%d/slots/manual-book - Booking placed: booking_id=%d, member=%d, slot=%s, method=%s",
		tenantID, result.ID, result.MemberID, result.SlotID, result.Method)

	status := http.StatusCreated
	if result.IsUpdate {
		status = http.StatusOK
	}
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
