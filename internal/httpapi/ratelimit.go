package httpapi

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/nikolayk812/storefront/internal/ratelimit"
)

type RateLimiter interface {
	Allow(ctx context.Context, identifier string) (ratelimit.Result, error)
}

// RateLimit counts requests per shopper, or per client address for anonymous requests.
// Requests pass through when the counter is unavailable.
func RateLimit(limiter RateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := clientIP(r)
			if shopper, ok := ShopperFromContext(r.Context()); ok {
				identifier = "user_" + shopper.ID
			}

			result, err := limiter.Allow(r.Context(), identifier)
			if err != nil {
				logger.Warn("Rate limiter unavailable", "method", "RateLimit", "identifier", identifier, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

			if !result.Allowed {
				retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(retryAfter, 1)))
				respondError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
