package auth

import (
	"net/http"

	"github.com/user/inkstream-go/apperror"
)

// TokenCookieName is the cookie carrying the session token.
const TokenCookieName = "token"

// RequireAuth returns middleware that verifies the session token cookie and
// stores the decoded claims in the request context. A bad or missing token is
// always an explicit 401 rejection, never a panic.
func RequireAuth(tokens *TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookieName)
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("missing token cookie", nil))
				return
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				WriteError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithClaims(r.Context(), claims)))
		})
	}
}
