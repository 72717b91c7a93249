package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
)

// HeaderOwnerID заголовок аутентификации владельца зала
// Заголовок проставляет API-gateway после проверки сессии
const HeaderOwnerID = "X-Owner-ID"

type ownerIDKey struct{}

const (
	msgMissingOwnerID = "отсутствует заголовок X-Owner-ID"
	msgInvalidOwnerID = "некорректный заголовок X-Owner-ID"
	msgTenantMismatch = "нет доступа к этому залу"
)

// OwnerAuth проверяет заголовок X-Owner-ID и кладет ID владельца в контекст
// Если маршрут содержит {tenantId}, владелец обязан совпадать с залом
func OwnerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderOwnerID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingOwnerID)
			return
		}

		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidOwnerID)
			return
		}

		if rawTenant, ok := mux.Vars(r)["tenantId"]; ok {
			tenantID, err := strconv.ParseInt(rawTenant, 10, 64)
			if err != nil || tenantID != ownerID {
				handlers.RespondForbidden(w, msgTenantMismatch)
				return
			}
		}

		ctx := context.WithValue(r.Context(), ownerIDKey{}, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnerIDFromContext достает ID владельца, положенный OwnerAuth
func OwnerIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ownerIDKey{}).(int64)
	return id, ok
}
