package get_availability

import (
	"github.com/m04kA/GMS-BookingService/internal/domain"
	getSlotAvailability "github.com/m04kA/GMS-BookingService/internal/usecase/get_slot_availability"
)

// SlotResponse состояние одного слота
type SlotResponse struct {
	SlotID         string  `json:"slotId"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	CurrentCount   int     `json:"currentCount"`
	MaxCapacity    int     `json:"maxCapacity"`
	AvailableSpots int     `json:"availableSpots"`
	OccupancyPct   float64 `json:"occupancyPct"`
	Tier           string  `json:"tier"`
	Severity       int     `json:"severity"`
	Advisory       string  `json:"advisory"`
	IsRecommended  bool    `json:"isRecommended"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TenantID int64          `json:"tenantId"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			SlotID:         string(s.SlotID),
			StartTime:      s.StartTime.String(),
			EndTime:        s.EndTime.String(),
			CurrentCount:   s.CurrentCount,
			MaxCapacity:    s.MaxCapacity,
			AvailableSpots: s.AvailableSpots,
			OccupancyPct:   s.OccupancyPct,
			Tier:           string(s.CrowdLevel.Tier),
			Severity:       s.CrowdLevel.Severity,
			Advisory:       s.CrowdLevel.Advisory,
			IsRecommended:  s.IsRecommended,
		}
	}

	return &AvailabilityResponse{
		TenantID: resp.TenantID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
	}
}
