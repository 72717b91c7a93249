package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда активная бронь не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCannotTransition возвращается, когда бронь уже в терминальном статусе
	ErrCannotTransition = errors.New("booking cannot change status")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
