package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// Principal is the verified identity of the caller, resolved once at the
// session boundary and passed through the request context. Services bind
// ownership checks to it, never to client-supplied payload fields.
type Principal struct {
	ID       int64
	Name     string
	Email    string
	Username string
}

type contextKey string

const principalKey = contextKey("principal")

// PrincipalFrom extracts the authenticated principal from a request context.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// WithPrincipal returns a context carrying the given principal. Exported for
// handler tests.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Resolver turns a verified subject claim (an email) into a principal.
type Resolver func(subjectEmail string) (Principal, error)

// Middleware protects routes: it verifies the bearer token, resolves its
// subject to a principal and stores it in the request context.
func Middleware(tokens *Tokens, resolve Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			// 1. Try to get the token from the Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, "Bearer ")
				if len(parts) == 2 {
					tokenStr = parts[1]
				}
			}

			// 2. If not in header, fall back to the cookie
			if tokenStr == "" {
				cookie, err := r.Cookie("token")
				if err != nil {
					http.Error(w, "Missing auth token", http.StatusUnauthorized)
					return
				}
				tokenStr = cookie.Value
			}

			if tokenStr == "" {
				http.Error(w, "Missing auth token", http.StatusUnauthorized)
				return
			}

			subject, err := tokens.Verify(tokenStr)
			if err != nil {
				http.Error(w, "Invalid auth token", http.StatusUnauthorized)
				return
			}

			// The token was valid but the account may have been deleted
			// after issuance; treat that the same as a bad token.
			principal, err := resolve(subject)
			if err != nil {
				log.Warn().Err(err).Str("subject", subject).Msg("Token subject no longer resolves to an account")
				http.Error(w, "Invalid auth token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}
