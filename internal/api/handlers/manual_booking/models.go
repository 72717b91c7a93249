package manual_booking

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	placeBooking "github.com/m04kA/GMS-BookingService/internal/usecase/place_booking"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	TenantID    int64  `json:"tenantId"`
	MemberID    int64  `json:"memberId"`
	MemberName  string `json:"memberName"`
	BookingDate string `json:"bookingDate"`
	SlotID      string `json:"slotId"`
	Status      string `json:"status"`
	Method      string `json:"method"`

	// Rebooked true, если существующая бронь дня перенесена на другой слот
	Rebooked bool `json:"rebooked"`

	// Overflow true при мягком переполнении слота
	Overflow      bool `json:"overflow"`
	OverflowCount int  `json:"overflowCount,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *placeBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		TenantID:      resp.TenantID,
		MemberID:      resp.MemberID,
		MemberName:    resp.MemberName,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		SlotID:        string(resp.SlotID),
		Status:        resp.Status,
		Method:        resp.Method,
		Rebooked:      resp.IsUpdate,
		Overflow:      resp.Overflow,
		OverflowCount: resp.OverflowCount,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
