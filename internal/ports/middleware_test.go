package ports_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grindheim/ladderlight/internal/ports"
	"github.com/grindheim/ladderlight/internal/ratelimiting"
	"github.com/stretchr/testify/require"
)

func TestComposeMiddlewares(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) func(http.HandlerFunc) http.HandlerFunc {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next(w, r)
			}
		}
	}

	handler := ports.ComposeMiddlewares(tag("outer"), tag("middle"), tag("inner"))(
		func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		},
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler(httptest.NewRecorder(), req)

	require.Equal(t, []string{"outer", "middle", "inner", "handler"}, order)
}

func TestNewRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	limiter, cleanup := ratelimiting.NewTokenBucketRateLimiter(
		ratelimiting.RefillPerSecond(1),
		ratelimiting.BurstSize(2),
	)
	defer cleanup()

	requestLimiter := ratelimiting.NewRequestBasedRateLimiter(limiter, ratelimiting.IPKeyFunc)

	limited := 0
	handled := 0
	handler := ports.NewRateLimitMiddleware(requestLimiter, func(w http.ResponseWriter, r *http.Request) {
		limited++
		w.WriteHeader(http.StatusTooManyRequests)
	})(func(w http.ResponseWriter, r *http.Request) {
		handled++
		w.WriteHeader(http.StatusOK)
	})

	for range 5 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		handler(httptest.NewRecorder(), req)
	}

	require.Equal(t, 2, handled)
	require.Equal(t, 3, limited)
}
