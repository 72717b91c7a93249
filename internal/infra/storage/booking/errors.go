package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда активная бронь не найдена
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrTokenAlreadyUsed возвращается, когда отпечаток токена уже привязан
	// к другой активной брони (нарушение уникального индекса по отпечатку)
	ErrTokenAlreadyUsed = errors.New("booking.repository: token fingerprint already used")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
