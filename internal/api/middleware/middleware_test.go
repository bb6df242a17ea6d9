package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_PutsTenantIDIntoContext(t *testing.T) {
	var gotTenantID int64
	var gotOK bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenantID, gotOK = GetTenantID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set(HeaderTenantID, "42")
	rec := httptest.NewRecorder()

	Auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gotOK)
	assert.Equal(t, int64(42), gotTenantID)
}

func TestAuth_MissingHeader(t *testing.T) {
	nextCalled := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()

	Auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, nextCalled)
	assert.JSONEq(t, `{"error":"отсутствует заголовок X-Tenant-ID"}`, rec.Body.String())
}

func TestAuth_InvalidHeader(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-5", "1.5"} {
		t.Run(raw, func(t *testing.T) {
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("next handler must not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			req.Header.Set(HeaderTenantID, raw)
			rec := httptest.NewRecorder()

			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestGetTenantID_EmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetTenantID(req.Context())
	assert.False(t, ok)
}

func TestRateLimiter_AllowsBurstThenRejects(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := rl.Limit(next)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
		req.Header.Set(HeaderTenantID, "42")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestRateLimiter_TenantsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := rl.Limit(next)

	do := func(tenant string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
		req.Header.Set(HeaderTenantID, tenant)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("1"))
	assert.Equal(t, http.StatusTooManyRequests, do("1"))
	// Исчерпание лимита одного тенанта не задевает другого
	assert.Equal(t, http.StatusOK, do("2"))
}

func TestRateLimiter_AnonymousKeyedByRemoteAddr(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := rl.Limit(next)

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1234"))
}
