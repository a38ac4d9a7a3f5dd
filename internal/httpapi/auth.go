package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nikolayk812/storefront/internal/domain"
)

type shopperKey struct{}

// Claims are the JWT claims identifying a shopper, the subject is the shopper id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func ContextWithShopper(ctx context.Context, shopper domain.Shopper) context.Context {
	return context.WithValue(ctx, shopperKey{}, shopper)
}

func ShopperFromContext(ctx context.Context) (domain.Shopper, bool) {
	shopper, ok := ctx.Value(shopperKey{}).(domain.Shopper)
	if !ok || shopper.ID == "" {
		return domain.Shopper{}, false
	}
	return shopper, true
}

// IssueToken signs an HS256 token for the shopper.
func IssueToken(secret []byte, shopper domain.Shopper, ttl time.Duration) (string, error) {
	if shopper.ID == "" {
		return "", errors.New("shopper id is empty")
	}

	now := time.Now()
	claims := Claims{
		Email: shopper.Email,
		Role:  shopper.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   shopper.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}

	return signed, nil
}

func parseToken(secret []byte, tokenString string) (domain.Shopper, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return domain.Shopper{}, fmt.Errorf("jwt.ParseWithClaims: %w", err)
	}
	if !token.Valid {
		return domain.Shopper{}, errors.New("token is invalid")
	}

	if claims.Subject == "" {
		return domain.Shopper{}, errors.New("subject is empty")
	}

	return domain.Shopper{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

// Authenticate rejects requests without a valid bearer token.
func Authenticate(secret []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "invalid authorization header")
				return
			}

			shopper, err := parseToken(secret, tokenString)
			if err != nil {
				logger.Debug("Rejected token", "method", "Authenticate", "error", err)
				respondError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithShopper(r.Context(), shopper)))
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := ShopperFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
			return
		}
		if !shopper.IsAdmin() {
			respondError(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
