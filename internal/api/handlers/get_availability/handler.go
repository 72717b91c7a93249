package get_availability

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
	msgFeatureDisabled = "отображение загруженности отключено для этого зала"
)

type Handler struct {
	useCase  AvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase AvailabilityUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/slots/availability/{tenantId}/{date}
// Публичная загруженность слотов, доступна только при включенной crowd-фиче
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil || tenantID <= 0 {
		h.logger.Warn("GET /slots/availability - Invalid tenant ID: %s", vars["tenantId"])
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, vars["date"], h.location)
	if err != nil {
		h.logger.Warn("GET /slots/availability - Invalid date: %s", vars["date"])
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlotAvailability.Request{
		TenantID:              tenantID,
		Date:                  date,
		RequireFeatureEnabled: true,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlotAvailability.ErrFeatureDisabled):
			h.logger.Warn("GET /slots/availability - Feature disabled: tenant=%d", tenantID)
			handlers.RespondForbidden(w, msgFeatureDisabled)

		case errors.Is(err, getSlotAvailability.ErrInvalidInput):
			h.logger.Warn("GET /slots/availability - Invalid input: tenant=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidTenantID)

		default:
			h.logger.Error("GET /slots/availability - Failed to load availability: tenant=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
