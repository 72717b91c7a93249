package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// tokenType значение дискриминатора типа в claims
const tokenType = "slot_booking"

// Claims расшифрованное содержимое бронировочного токена
type Claims struct {
	TenantID   int64
	MemberID   int64
	MemberName string
	// Date операционная дата, на которую выписан токен (усечена до дня)
	Date time.Time
}

// bookingClaims JWT-представление claims
type bookingClaims struct {
	TenantID   int64  `json:"tid"`
	MemberID   int64  `json:"mid"`
	MemberName string `json:"mname"`
	Date       string `json:"bdate"` // YYYY-MM-DD
	Type       string `json:"typ"`
	jwt.RegisteredClaims
}

// Manager выпускает и проверяет подписанные бронировочные токены
// Токен двойной привязки: TTL подписи + явная дата в claims, что позволяет
// рассылать ссылки заранее, но принуждает использовать их в день бронирования.
// Защита от повторного использования - не здесь, а в BookingLedger по отпечатку
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager создает менеджер токенов с HS256-секретом и TTL подписи
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue выпускает токен для участника на указанную дату
func (m *Manager) Issue(tenantID, memberID int64, memberName string, date time.Time, now time.Time) (string, error) {
	claims := bookingClaims{
		TenantID:   tenantID,
		MemberID:   memberID,
		MemberName: memberName,
		Date:       date.Format(domain.DateFormat),
		Type:       tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

// Validate проверяет токен и возвращает claims
// Порядок проверок: наличие -> подпись/формат -> TTL -> дата
// expectedTenant ограничивает токен конкретным залом (nil - без ограничения)
func (m *Manager) Validate(tokenString string, expectedTenant *int64, asOf time.Time) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	var claims bookingClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		// Подпись проверяется до claims, поэтому ErrTokenExpired означает
		// валидную подпись с истекшим TTL
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.Type != tokenType {
		return nil, fmt.Errorf("%w: unexpected token type %q", ErrTokenInvalid, claims.Type)
	}

	if expectedTenant != nil && claims.TenantID != *expectedTenant {
		return nil, fmt.Errorf("%w: token issued for another tenant", ErrTokenInvalid)
	}

	date, err := time.ParseInLocation(domain.DateFormat, claims.Date, asOf.Location())
	if err != nil {
		return nil, fmt.Errorf("%w: malformed date claim %q", ErrTokenInvalid, claims.Date)
	}

	// Токен действует только в день, на который он выписан
	y1, m1, d1 := date.Date()
	y2, m2, d2 := asOf.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return nil, ErrTokenDateMismatch
	}

	return &Claims{
		TenantID:   claims.TenantID,
		MemberID:   claims.MemberID,
		MemberName: claims.MemberName,
		Date:       date,
	}, nil
}

// Fingerprint возвращает стабильный отпечаток токена (hex SHA-256)
// По нему BookingLedger гарантирует не более одной брони на токен
func Fingerprint(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(sum[:])
}
