package memberservice

import "errors"

var (
	// ErrMemberNotFound возвращается, когда участник не найден в зале
	ErrMemberNotFound = errors.New("member not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("memberservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("memberservice client: invalid response")

	// ErrServiceUnavailable возвращается, когда MemberService недоступен
	// Бронирование при этом прерывается: без статуса оплаты бронь не создаём
	ErrServiceUnavailable = errors.New("memberservice client: service unavailable")
)
