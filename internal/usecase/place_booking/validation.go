package place_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.MemberID <= 0 {
		return fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SlotID == "" {
		return fmt.Errorf("%w: slotID is required", ErrInvalidInput)
	}

	// Слот обязан принадлежать каталогу, произвольные окна недопустимы
	if !domain.IsValidSlot(req.SlotID) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, req.SlotID)
	}

	if !domain.IsValidMethod(req.Method) {
		return fmt.Errorf("%w: unknown booking method %q", ErrInvalidInput, req.Method)
	}

	return nil
}

// validateDate проверяет дату бронирования относительно операционного "сегодня"
// Все методы запрещают даты раньше сегодняшнего дня
func validateDate(bookingDate time.Time, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	return nil
}

// validateSlotWindow проверяет, что окно слота на сегодня еще не закончилось
// Вызывается только для member-initiated методов и только для сегодняшней даты
func validateSlotWindow(slot domain.SlotID, bookingDate time.Time, now time.Time) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	if !slot.EndTime().IsAfter(currentTime) {
		return fmt.Errorf("%w: %q", ErrSlotInPast, slot)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
