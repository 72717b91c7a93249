package place_booking

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// Request модель запроса на бронирование слота
type Request struct {
	TenantID int64                // ID зала
	MemberID int64                // ID участника
	Date     time.Time            // Дата бронирования (без времени)
	SlotID   domain.SlotID        // Слот каталога, например "18:00-19:00"
	Method   domain.BookingMethod // Способ создания брони

	// TokenFingerprint отпечаток бронировочного токена (только для self-service)
	TokenFingerprint *string
}

// Response модель ответа с созданной или обновленной бронью
type Response struct {
	ID          int64
	TenantID    int64
	MemberID    int64
	MemberName  string
	BookingDate time.Time
	SlotID      domain.SlotID
	Status      string
	Method      string

	// IsUpdate true, если участник перебронировал слот в тот же день
	IsUpdate bool

	// Overflow мягкое переполнение: бронь создана, но слот превысил вместимость
	Overflow      bool
	OverflowCount int

	// CrowdLevel классификация слота после создания брони
	CrowdLevel domain.CrowdLevel

	CreatedAt time.Time
	UpdatedAt time.Time
}
