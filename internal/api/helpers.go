package api

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/quillapp/quill-server/internal/errors"
	"github.com/quillapp/quill-server/internal/id"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

const clientIPKey ctxKey = "clientIP"

// clientIPMiddleware stores the client IP in the request context so huma
// handlers, which never see the raw *http.Request, can read it.
// Runs after chi's RealIP middleware, which resolves proxy headers.
func clientIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientIPKey, ip)))
	})
}

// clientIP returns the client IP stored by clientIPMiddleware, or empty.
func clientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

// AuthorizedInput is the input for operations that take no parameters
// beyond the bearer token.
type AuthorizedInput struct {
	Authorization string `header:"Authorization"`
}

// authenticateRequest validates the Authorization header and returns the
// authenticated user ID.
func (s *Server) authenticateRequest(_ context.Context, authHeader string) (string, error) {
	if authHeader == "" {
		return "", huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", huma.Error401Unauthorized("Invalid authorization header format")
	}

	claims, err := s.services.Auth.VerifyAccessToken(parts[1])
	if err != nil {
		return "", huma.Error401Unauthorized("Invalid or expired token")
	}

	return claims.UserID, nil
}

// requireValidPostID rejects malformed post identifiers before any store
// access.
func requireValidPostID(postID string) error {
	if !id.IsValidDocumentID(postID) {
		return domainerrors.Validationf("malformed post id %q", postID)
	}
	return nil
}
