package crowd_dashboard

import (
	"github.com/m04kA/GMS-BookingService/internal/domain"
	getSlotAvailability "github.com/m04kA/GMS-BookingService/internal/usecase/get_slot_availability"
)

// MemberSummary участник в слоте на дашборде владельца
type MemberSummary struct {
	MemberID   int64  `json:"memberId"`
	MemberName string `json:"memberName"`
}

// SlotResponse состояние слота с участниками
type SlotResponse struct {
	SlotID         string          `json:"slotId"`
	StartTime      string          `json:"startTime"`
	EndTime        string          `json:"endTime"`
	CurrentCount   int             `json:"currentCount"`
	MaxCapacity    int             `json:"maxCapacity"`
	AvailableSpots int             `json:"availableSpots"`
	OccupancyPct   float64         `json:"occupancyPct"`
	Tier           string          `json:"tier"`
	Severity       int             `json:"severity"`
	Advisory       string          `json:"advisory"`
	Members        []MemberSummary `json:"members"`
}

// StatsResponse сводка дня
type StatsResponse struct {
	TotalBookings   int            `json:"totalBookings"`
	TierCounts      map[string]int `json:"tierCounts"`
	AvgOccupancyPct float64        `json:"avgOccupancyPct"`
}

// DashboardResponse HTTP response model
type DashboardResponse struct {
	TenantID int64          `json:"tenantId"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
	Stats    StatsResponse  `json:"stats"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotAvailability.Response) *DashboardResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		members := make([]MemberSummary, len(s.Members))
		for j, m := range s.Members {
			members[j] = MemberSummary{
				MemberID:   m.MemberID,
				MemberName: m.MemberName,
			}
		}

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
			Members:        members,
		}
	}

	tierCounts := make(map[string]int, len(resp.Stats.TierCounts))
	for tier, count := range resp.Stats.TierCounts {
		tierCounts[string(tier)] = count
	}

	return &DashboardResponse{
		TenantID: resp.TenantID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
		Stats: StatsResponse{
			TotalBookings:   resp.Stats.TotalBookings,
			TierCounts:      tierCounts,
			AvgOccupancyPct: resp.Stats.AverageOccupancyPercentage,
		},
	}
}
