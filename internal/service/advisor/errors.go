package advisor

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("advisor: invalid input data")

	// ErrNoHistory возвращается, когда у участника нет броней до сегодняшнего дня
	ErrNoHistory = errors.New("advisor: member has no booking history")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("advisor: internal error")
)
