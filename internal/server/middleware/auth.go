package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/geocheckin/internal/server/handlers"
)

// AuthMiddleware проверяет bearer токен курьера и кладет его ID в контекст
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header", "path", r.URL.Path)
				handlers.WriteError(w, "missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				logger.Warn("Invalid Authorization header format")
				handlers.WriteError(w, "invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				handlers.WriteError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			logger.Debug("Shipper authenticated", "shipper_id", claims.ShipperID)

			next.ServeHTTP(w, r.WithContext(handlers.WithShipperID(r.Context(), claims.ShipperID)))
		})
	}
}
