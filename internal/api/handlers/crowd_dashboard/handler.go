package crowd_dashboard

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/domain"
	getSlotAvailability "github.com/m04kA/GMS-BookingService/internal/usecase/get_slot_availability"
)

const (
	msgInvalidTenantID = "некорректный ID зала"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase      AvailabilityUseCase
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

func NewHandler(useCase AvailabilityUseCase, timeProvider TimeProvider, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/slots/crowd-dashboard?date=
// Дашборд владельца: слоты с участниками и сводкой дня
// Доступен владельцу независимо от публичной crowd-фичи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil || tenantID <= 0 {
		h.logger.Warn("GET /tenants/{tenantId}/slots/crowd-dashboard - Invalid tenant ID")
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	date := h.timeProvider.Now()
	if rawDate := r.URL.Query().Get("date"); rawDate != "" {
		date, err = time.ParseInLocation(domain.DateFormat, rawDate, h.location)
		if err != nil {
			h.logger.Warn("GET /tenants/%d/slots/crowd-dashboard - Invalid date: %s", tenantID, rawDate)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getSlotAvailability.Request{
		TenantID:       tenantID,
		Date:           date,
		IncludeMembers: true,
	})
	if err != nil {
		if errors.Is(err, getSlotAvailability.ErrInvalidInput) {
			h.logger.Warn("GET /tenants/%d/slots/crowd-dashboard - Invalid input: %v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidTenantID)
			return
		}
		h.logger.Error("GET /tenants/%d/slots/crowd-dashboard - Failed to load dashboard: %v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
