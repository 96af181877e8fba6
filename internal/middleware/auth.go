package middleware

import (
	"context"
	"net/http"
	"strings"

	"docscabinet/internal/auth"
	"docscabinet/internal/utils"
)

// AuthHeader carries the identity token. The client sends the raw token,
// not a bearer-prefixed Authorization header.
const AuthHeader = "x-docs-cabinet-authentication"

type ctxKey string

const principalKey ctxKey = "principal"

// Authenticate verifies the token header and pushes the resulting
// principal into the request context.
func Authenticate(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(AuthHeader))

			principal, err := issuer.Authenticate(token)
			if err != nil {
				utils.Error(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom extracts the authenticated principal set by Authenticate.
func PrincipalFrom(r *http.Request) (auth.Principal, bool) {
	p, ok := r.Context().Value(principalKey).(auth.Principal)
	return p, ok
}
