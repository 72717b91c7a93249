package member_history

import (
	"github.com/m04kA/GMS-BookingService/internal/service/advisor"
	bookingModels "github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
)

// PatternResponse привычки участника за окно наблюдения
type PatternResponse struct {
	TotalBookings  int            `json:"totalBookings"`
	Histogram      map[string]int `json:"histogram"`
	PreferredSlot  string         `json:"preferredSlot"`
	BookingsPerDay float64        `json:"bookingsPerDay"`
}

// HistoryResponse HTTP response model
type HistoryResponse struct {
	TenantID int64                           `json:"tenantId"`
	MemberID int64                           `json:"memberId"`
	Bookings []bookingModels.BookingResponse `json:"bookings"`

	// Pattern отсутствует, если у участника нет броней за окно
	Pattern *PatternResponse `json:"pattern,omitempty"`
}

// FromPattern конвертирует модель advisor в HTTP response
func FromPattern(p *advisor.BookingPattern) *PatternResponse {
	if p == nil {
		return nil
	}

	histogram := make(map[string]int, len(p.Histogram))
	for slot, count := range p.Histogram {
		histogram[string(slot)] = count
	}

	return &PatternResponse{
		TotalBookings:  p.TotalBookings,
		Histogram:      histogram,
		PreferredSlot:  string(p.PreferredSlot),
		BookingsPerDay: p.BookingsPerDay,
	}
}
