package memberservice

// Payment status values returned by MemberService
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
)

// Member модель участника из MemberService
type Member struct {
	ID            int64  `json:"id"`
	TenantID      int64  `json:"tenant_id"`
	Name          string `json:"name"`
	PhoneNo       string `json:"phone_no"`
	PaymentStatus string `json:"payment_status"`
}

// HasPendingPayment returns true if the member's payment blocks self-service booking
func (m *Member) HasPendingPayment() bool {
	return m.PaymentStatus == PaymentStatusPending
}

// ErrorResponse модель ошибки от MemberService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
