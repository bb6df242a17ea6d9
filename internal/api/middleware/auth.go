package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
)

type contextKey string

const tenantIDKey contextKey = "tenantID"

// HeaderTenantID заголовок с идентификатором тенанта
const HeaderTenantID = "X-Tenant-ID"

const (
	msgMissingTenantID = "отсутствует заголовок X-Tenant-ID"
	msgInvalidTenantID = "некорректный заголовок X-Tenant-ID"
)

// Auth проверяет наличие X-Tenant-ID и кладет его в контекст запроса.
// Аутентификацию выполняет API gateway, сервис доверяет заголовку.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderTenantID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingTenantID)
			return
		}

		tenantID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tenantID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidTenantID)
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID возвращает идентификатор тенанта из контекста запроса
func GetTenantID(ctx context.Context) (int64, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(int64)
	return tenantID, ok
}
