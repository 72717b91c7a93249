package member_history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/service/advisor"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings"
	bookingModels "github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidTenantID = "некорректный ID зала"
	msgInvalidMemberID = "некорректный ID участника"
	msgInvalidDays     = "некорректный параметр days"
)

type Handler struct {
	bookingsSvc BookingsService
	advisorSvc  AdvisorService
	logger      Logger
}

func NewHandler(bookingsSvc BookingsService, advisorSvc AdvisorService, logger Logger) *Handler {
	return &Handler{
		bookingsSvc: bookingsSvc,
		advisorSvc:  advisorSvc,
		logger:      logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/members/{memberId}/history?days=
// История броней участника с гистограммой привычек
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil || tenantID <= 0 {
		h.logger.Warn("GET /tenants/{tenantId}/members/{memberId}/history - Invalid tenant ID")
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	memberID, err := strconv.ParseInt(vars["memberId"], 10, 64)
	if err != nil || memberID <= 0 {
		h.logger.Warn("GET /tenants/%d/members/{memberId}/history - Invalid member ID", tenantID)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	windowDays := domain.DefaultPatternWindowDays
	if rawDays := r.URL.Query().Get("days"); rawDays != "" {
		windowDays, err = strconv.Atoi(rawDays)
		if err != nil || windowDays <= 0 {
			h.logger.Warn("GET /tenants/%d/members/%d/history - Invalid days: %s", tenantID, memberID, rawDays)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	history, err := h.bookingsSvc.MemberHistory(r.Context(), &bookingModels.MemberHistoryRequest{
		TenantID:   tenantID,
		MemberID:   memberID,
		WindowDays: &windowDays,
	})
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /tenants/%d/members/%d/history - Invalid input: %v", tenantID, memberID, err)
			handlers.RespondBadRequest(w, msgInvalidMemberID)
			return
		}
		h.logger.Error("GET /tenants/%d/members/%d/history - Failed to load history: %v", tenantID, memberID, err)
		handlers.RespondInternalError(w)
		return
	}

	response := &HistoryResponse{
		TenantID: tenantID,
		MemberID: memberID,
		Bookings: history.Bookings,
	}

	pattern, err := h.advisorSvc.Pattern(r.Context(), tenantID, memberID, windowDays)
	if err == nil {
		response.Pattern = FromPattern(pattern)
	} else if !errors.Is(err, advisor.ErrNoHistory) {
		h.logger.Error("GET /tenants/%d/members/%d/history - Failed to compute pattern: %v", tenantID, memberID, err)
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
