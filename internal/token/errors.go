package token

import "errors"

var (
	// ErrTokenMissing возвращается, когда токен не передан
	ErrTokenMissing = errors.New("token: missing token")

	// ErrTokenInvalid возвращается при невалидной подписи, формате или scope токена
	ErrTokenInvalid = errors.New("token: invalid token")

	// ErrTokenExpired возвращается, когда срок действия токена истек
	ErrTokenExpired = errors.New("token: token expired")

	// ErrTokenDateMismatch возвращается, когда дата в токене не совпадает с операционной датой
	// Токен, выписанный на "сегодня", не действует "завтра", даже если TTL подписи не истек
	ErrTokenDateMismatch = errors.New("token: booking date mismatch")

	// ErrSigning возвращается при ошибке подписи нового токена
	ErrSigning = errors.New("token: failed to sign token")
)
