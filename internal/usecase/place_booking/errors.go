package place_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("place_booking: invalid input data")

	// ErrInvalidSlot возвращается, когда слот не принадлежит каталогу
	ErrInvalidSlot = errors.New("place_booking: slot is not in the catalog")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("place_booking: invalid booking date")

	// ErrSlotInPast возвращается, когда окно слота на сегодня уже закончилось
	// Действует только для self-service путей, владелец может дозаполнить день
	ErrSlotInPast = errors.New("place_booking: slot window has already ended")

	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("place_booking: member not found")

	// ErrPaymentPending возвращается, когда статус оплаты блокирует бронирование
	ErrPaymentPending = errors.New("place_booking: member payment is pending")

	// ErrTokenAlreadyUsed возвращается при повторном использовании токена
	ErrTokenAlreadyUsed = errors.New("place_booking: booking token already used")

	// ErrSlotFull возвращается только в режиме жесткого лимита вместимости
	ErrSlotFull = errors.New("place_booking: slot is full")

	// ErrServiceUnavailable возвращается, когда MemberService недоступен
	ErrServiceUnavailable = errors.New("place_booking: member service unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("place_booking: internal error")
)
