package middleware

import (
	"net/http"
	"strings"

	"github.com/dormscout/dormscout/internal/ctxkeys"
	"github.com/dormscout/dormscout/internal/service"
)

// Auth verifies the JWT from the auth cookie or an Authorization bearer
// header and, when valid, loads user and profile into the request context.
// An invalid or missing token never blocks the request here; handlers and
// RequireAuth decide what anonymous requests may do.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			fromCookie := false
			if tokenString == "" {
				cookie, err := r.Cookie("auth_token")
				if err != nil {
					next.ServeHTTP(w, r)
					return
				}
				tokenString = cookie.Value
				fromCookie = true
			}

			clear := func() {
				if fromCookie {
					authService.ClearJWTCookie(w)
				}
				next.ServeHTTP(w, r)
			}

			claims, err := authService.VerifyJWT(tokenString)
			if err != nil {
				clear()
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok {
				clear()
				return
			}

			user, err := authService.UserByID(userID)
			if err != nil {
				clear()
				return
			}
			user.PasswordHash = nil

			profile, err := authService.ProfileByUserID(userID)
			if err != nil {
				clear()
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			ctx = ctxkeys.WithProfile(ctx, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		next(w, r)
	}
}
