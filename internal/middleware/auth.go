package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cyberkittens/cyberkittens-go/internal/crypto"
	"github.com/cyberkittens/cyberkittens-go/internal/model"
)

type identityKey struct{}

// TokenVerifier turns a bearer token into the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (model.Identity, error)
}

// Authenticate attaches the caller's identity to the request context when an
// Authorization header is present. Requests without the header pass through
// anonymously; handlers decide whether an identity is required.
func Authenticate(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				writeJSONError(w, http.StatusUnauthorized, model.ErrNameAuthentication, "invalid authorization format")
				return
			}

			id, err := tokens.Verify(token)
			if err != nil {
				if errors.Is(err, crypto.ErrMissingSecret) {
					slog.Error("token verification unavailable",
						"request_id", chimw.GetReqID(r.Context()),
						"error", err)
					writeJSONError(w, http.StatusInternalServerError, model.ErrNameInternal, "internal server error")
					return
				}
				writeJSONError(w, http.StatusUnauthorized, model.ErrNameAuthentication, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the authenticated identity from the request context.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(model.Identity)
	return id, ok
}
