package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/retailnet/orders-api/app/models"
	"github.com/retailnet/orders-api/app/repositories"
	"github.com/unrolled/render"
)

type contextKey string

const userKey contextKey = "current_user"

// Auth resolves "Authorization: Token <key>" into the owning user and puts
// it on the request context. Requests without a valid token of an active
// user are rejected.
func Auth(tokenRepo repositories.TokenRepository, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Token") || parts[1] == "" {
				unauthorized(rnd, w, "token required")
				return
			}

			token, err := tokenRepo.FindByKey(r.Context(), parts[1])
			if err != nil {
				log.Printf("Auth: token lookup failed: %v", err)
				_ = rnd.JSON(w, http.StatusInternalServerError, map[string]interface{}{
					"Status": false, "Error": "internal_error", "Message": "could not verify token",
				})
				return
			}
			if token == nil || !token.User.IsActive {
				unauthorized(rnd, w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, &token.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(rnd *render.Render, w http.ResponseWriter, msg string) {
	_ = rnd.JSON(w, http.StatusUnauthorized, map[string]interface{}{
		"Status": false, "Error": "authorization_error", "Message": msg,
	})
}

// UserFromContext returns the authenticated user placed by Auth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
