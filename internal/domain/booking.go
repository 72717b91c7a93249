package domain

import "time"

// BookingStatus represents the status of a slot booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
	StatusCompleted BookingStatus = "completed"
)

// BookingMethod represents how the booking was created
type BookingMethod string

const (
	// MethodSelfServiceLink бронирование по подписанной ссылке из рассылки
	MethodSelfServiceLink BookingMethod = "self_service_link"

	// MethodOwnerManual бронирование, созданное владельцем зала вручную
	MethodOwnerManual BookingMethod = "owner_manual"

	// MethodCarriedFromPreviousSlot автоброн по привычному слоту участника
	MethodCarriedFromPreviousSlot BookingMethod = "carried_from_previous_slot"

	// MethodWalkIn участник пришел без записи, владелец оформил на месте
	MethodWalkIn BookingMethod = "walk_in"
)

// Booking represents a member's slot booking for a single day
// Ровно одна активная бронь на (tenant, member, date): повторное бронирование
// в тот же день обновляет существующую строку, а не создает новую
type Booking struct {
	ID          int64
	TenantID    int64
	MemberID    int64
	BookingDate time.Time // всегда усечена до начала дня
	SlotID      SlotID
	Status      BookingStatus
	Method      BookingMethod

	// TokenFingerprint отпечаток подписанного токена, которым создана бронь
	// Уникален среди активных броней - защита от повторного использования ссылки
	TokenFingerprint *string

	// Denormalized member data for history and the owner dashboard
	MemberName  string
	MemberPhone *string

	// Crowd metadata
	CarriedFromPrevious bool
	AutoBooked          bool
	OverflowWarnings    int

	// Check-in fields are persisted for shape compatibility, no operation
	// populates them yet
	CheckInAt  *time.Time
	CheckOutAt *time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies a spot in its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// IsTerminal returns true if no automatic transition leaves this status
// Реактивация возможна только новой бронью через PlaceBooking
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusNoShow || b.Status == StatusCompleted
}

// CanTransitionTo validates the booking status state machine:
// confirmed -> cancelled | no_show | completed, терминальные статусы не меняются
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status != StatusConfirmed {
		return false
	}
	switch next {
	case StatusCancelled, StatusNoShow, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsMemberInitiated returns true for booking methods triggered on behalf of the
// member (payment status precondition applies to these paths)
func (m BookingMethod) IsMemberInitiated() bool {
	return m == MethodSelfServiceLink || m == MethodCarriedFromPreviousSlot
}

// IsValidMethod проверяет, что метод бронирования известен
func IsValidMethod(m BookingMethod) bool {
	switch m {
	case MethodSelfServiceLink, MethodOwnerManual, MethodCarriedFromPreviousSlot, MethodWalkIn:
		return true
	default:
		return false
	}
}

// IsValidStatus проверяет, что статус известен
func IsValidStatus(s BookingStatus) bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusNoShow, StatusCompleted:
		return true
	default:
		return false
	}
}

// MemberRef краткая ссылка на участника из денормализованных данных брони
// Используется рассылкой напоминаний и сводкой по слотам на дашборде
type MemberRef struct {
	MemberID   int64
	MemberName string
}

// TruncateToDay нормализует дату брони к началу дня в указанной зоне
// Все даты в bookings хранятся усеченными - сравнение дат не зависит от времени
func TruncateToDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
