package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit_Identifier(t *testing.T) {
	tests := []struct {
		name    string
		shopper *domain.Shopper
		remote  string
		want    string
	}{
		{
			name:   "anonymous with port",
			remote: "10.0.0.1:51234",
			want:   "10.0.0.1",
		},
		{
			name:   "anonymous without port",
			remote: "10.0.0.2",
			want:   "10.0.0.2",
		},
		{
			name:    "shopper",
			shopper: &domain.Shopper{ID: "42"},
			remote:  "10.0.0.1:51234",
			want:    "user_42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := &fakeLimiter{result: ratelimit.Result{Allowed: true, Limit: 1, Remaining: 0}}
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			handler := RateLimit(limiter, logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.shopper != nil {
				req = req.WithContext(ContextWithShopper(req.Context(), *tt.shopper))
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, []string{tt.want}, limiter.identifiers)
			assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
		})
	}
}
