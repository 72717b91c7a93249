package get_booking_page

import (
	bookingModels "github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
	getSlotAvailability "github.com/m04kA/GMS-BookingService/internal/usecase/get_slot_availability"
)

// MemberContext участник, для которого выписана бронировочная ссылка
type MemberContext struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SlotResponse состояние одного слота на странице бронирования
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

// BookingPageResponse полезная нагрузка страницы бронирования
type BookingPageResponse struct {
	TenantID int64         `json:"tenantId"`
	Date     string        `json:"date"`
	Member   MemberContext `json:"member"`

	// CurrentBooking активная бронь участника на дату токена, если есть
	CurrentBooking *bookingModels.BookingResponse `json:"currentBooking,omitempty"`

	// SuggestedSlot привычный слот участника по последней брони
	SuggestedSlot *string `json:"suggestedSlot,omitempty"`

	Slots []SlotResponse `json:"slots"`
}

// FromAvailabilitySlots конвертирует слоты use case в HTTP модель
func FromAvailabilitySlots(slots []getSlotAvailability.SlotAvailability) []SlotResponse {
	result := make([]SlotResponse, len(slots))
	for i, s := range slots {
		result[i] = SlotResponse{
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
	return result
}
