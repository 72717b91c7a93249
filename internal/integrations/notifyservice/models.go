package notifyservice

// sendRequest тело запроса к NotifyService
// Сервис сам выбирает канал доставки (WhatsApp/email) по настройкам получателя
type sendRequest struct {
	TenantID int64  `json:"tenant_id"`
	MemberID *int64 `json:"member_id,omitempty"` // nil - уведомление владельцу зала
	Message  string `json:"message"`
}
