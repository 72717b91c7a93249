package notifyservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice client: internal error")

	// ErrSendFailed возвращается, когда NotifyService не принял уведомление
	// Вызывающий код логирует и продолжает: доставка уведомлений best-effort
	// и никогда не откатывает уже созданную бронь
	ErrSendFailed = errors.New("notifyservice client: send failed")
)
