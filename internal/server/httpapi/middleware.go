package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/abhi221112/weekend-denso/internal/common"
	"github.com/abhi221112/weekend-denso/internal/server/auth"
	"github.com/abhi221112/weekend-denso/internal/server/models"
)

type contextKey int

const claimsKey contextKey = iota

// requireAuth verifies the bearer access token and stores its claims in the
// request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, common.ErrInvalidToken)
			return
		}

		claims, err := s.auth.ParseAccessToken(token)
		if err != nil {
			respondError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// claimsFrom returns the verified claims requireAuth stored, or nil on
// unauthenticated routes.
func claimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// sessionFrom rebuilds the caller session from token claims.
func sessionFrom(ctx context.Context) *models.Session {
	claims := claimsFrom(ctx)
	if claims == nil {
		return nil
	}
	return &models.Session{
		UserID:       claims.UserID,
		Role:         models.Role(claims.Role),
		GroupName:    claims.GroupName,
		SupplierCode: claims.SupplierCode,
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug(r.Context(), "request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
