package update_status

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings"
	bookingModels "github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTenantID    = "некорректный ID зала"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus      = "недопустимый статус, ожидается no_show, completed или cancelled"
	msgBookingNotFound    = "активная бронь не найдена"
	msgCannotTransition   = "бронь уже в завершенном статусе"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	MemberID int64  `json:"memberId"`
	Date     string `json:"date"` // "2026-09-01"
	Status   string `json:"status"`
}

type Handler struct {
	bookingsSvc BookingsService
	location    *time.Location
	logger      Logger
}

func NewHandler(bookingsSvc BookingsService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		bookingsSvc: bookingsSvc,
		location:    location,
		logger:      logger,
	}
}

// Handle PATCH /api/v1/tenants/{tenantId}/bookings/status
// Владелец отмечает посещение: no_show или completed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil || tenantID <= 0 {
		h.logger.Warn("PATCH /tenants/{tenantId}/bookings/status - Invalid tenant ID")
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /tenants/%d/bookings/status - Invalid request body: %v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, h.location)
	if err != nil {
		h.logger.Warn("PATCH /tenants/%d/bookings/status - Invalid date: %s", tenantID, req.Date)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.bookingsSvc.UpdateStatus(r.Context(), &bookingModels.UpdateStatusRequest{
		TenantID: tenantID,
		MemberID: req.MemberID,
		Date:     date,
		Status:   req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /tenants/%d/bookings/status - Invalid status: %s", tenantID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /tenants/%d/bookings/status - Invalid input: %v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /tenants/%d/bookings/status - Booking not found: member=%d, date=%s",
				tenantID, req.MemberID, req.Date)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrCannotTransition):
			h.logger.Warn("PATCH /tenants/%d/bookings/status - Cannot transition: member=%d, date=%s",
				tenantID, req.MemberID, req.Date)
			handlers.RespondConflict(w, msgCannotTransition)

		default:
			h.logger.Error("PATCH /tenants/%d/bookings/status - Failed to update status: member=%d, error=%v",
				tenantID, req.MemberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /tenants/%d/bookings/status - Status updated: booking_id=%d, member=%d, status=%s",
		tenantID, result.ID, req.MemberID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
