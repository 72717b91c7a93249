package models

import (
	"errors"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену брони
type CancelBookingRequest struct {
	TenantID           int64
	MemberID           int64
	Date               time.Time
	CancellationReason string
}

// UpdateStatusRequest запрос на смену статуса брони (владелец отмечает посещение)
type UpdateStatusRequest struct {
	TenantID int64
	MemberID int64
	Date     time.Time
	Status   string
}

// MemberHistoryRequest запрос истории бронирований участника
type MemberHistoryRequest struct {
	TenantID int64
	MemberID int64

	// WindowDays ограничивает историю последними N днями; nil - вся история
	WindowDays *int
}

// Response модели

// BookingResponse ответ с данными брони
type BookingResponse struct {
	ID          int64  `json:"id"`
	TenantID    int64  `json:"tenantId"`
	MemberID    int64  `json:"memberId"`
	MemberName  string `json:"memberName"`
	BookingDate string `json:"bookingDate"` // "2026-09-01"
	SlotID      string `json:"slotId"`      // "18:00-19:00"
	StartTime   string `json:"startTime"`   // "18:00"
	EndTime     string `json:"endTime"`     // "19:00"
	Status      string `json:"status"`
	Method      string `json:"method"`

	CarriedFromPrevious bool `json:"carriedFromPrevious"`
	AutoBooked          bool `json:"autoBooked"`
	OverflowWarnings    int  `json:"overflowWarnings,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком броней
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                  b.ID,
		TenantID:            b.TenantID,
		MemberID:            b.MemberID,
		MemberName:          b.MemberName,
		BookingDate:         b.BookingDate.Format(domain.DateFormat),
		SlotID:              string(b.SlotID),
		StartTime:           b.SlotID.StartTime().String(),
		EndTime:             b.SlotID.EndTime().String(),
		Status:              string(b.Status),
		Method:              string(b.Method),
		CarriedFromPrevious: b.CarriedFromPrevious,
		AutoBooked:          b.AutoBooked,
		OverflowWarnings:    b.OverflowWarnings,
		CancellationReason:  b.CancellationReason,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
