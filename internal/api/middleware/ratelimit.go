package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов"

// visitorTTL через сколько забываем неактивного клиента
const visitorTTL = 10 * time.Minute

// RateLimiter пер-клиентский ограничитель частоты запросов
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewRateLimiter создает ограничитель: rps запросов в секунду на клиента
// с указанным размером всплеска
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.visitors[key]; ok {
		return limiter
	}

	limiter := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = limiter

	// Неактивные клиенты вычищаются по TTL
	go func() {
		time.Sleep(visitorTTL)
		rl.mu.Lock()
		delete(rl.visitors, key)
		rl.mu.Unlock()
	}()

	return limiter
}

// Limit middleware, ограничивающее частоту запросов по клиенту.
// Ключом служит X-Tenant-ID, для анонимных запросов адрес клиента.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(HeaderTenantID)
		if key == "" {
			key = r.RemoteAddr
		}

		if !rl.getLimiter(key).Allow() {
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
