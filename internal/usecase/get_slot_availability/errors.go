package get_slot_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slot_availability: invalid input data")

	// ErrFeatureDisabled возвращается, когда crowd-фича выключена у зала
	ErrFeatureDisabled = errors.New("get_slot_availability: crowd feature is disabled for tenant")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_availability: internal error")
)
