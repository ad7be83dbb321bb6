package v1handler

import (
	"net/http"
	"strings"

	"github.com/MohammedAlhaje/eleganza/pkg/serrors"
	"github.com/golang-jwt/jwt/v5"
)

// BearerAuth returns a middleware enforcing an HS256 bearer token on the
// wrapped routes. Tokens are minted by the token command with the same secret.
func (h *Handler) BearerAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok || token == "" {
				h.respondError(w, r, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

				return
			}

			_, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, serrors.With(serrors.ErrUnauthorized,
						"unexpected signing method %q", t.Method.Alg())
				}

				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				h.respondError(w, r, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid bearer token"))

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
