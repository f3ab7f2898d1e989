package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/geocheckin/pkg/api"
)

// AuthHandler обрабатывает запросы, связанные с токеном курьера
type AuthHandler struct {
	responder
	jwtConfig JWTConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{responder: responder{logger: logger}, jwtConfig: jwtConfig}
}

// WhoAmI обрабатывает GET /api/v1/auth/whoami
// Клиент вызывает его при login, чтобы проверить токен до сохранения
func (h *AuthHandler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shipperID, ok := GetShipperID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	resp := api.WhoAmIResponse{ShipperID: shipperID}

	// токен уже проверен middleware, здесь нужен только срок действия
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
	if claims, err := ValidateAccessToken(h.jwtConfig, token); err == nil && claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Unix()
	}

	h.logger.DebugContext(ctx, "whoami", slog.String("shipper_id", shipperID))
	h.sendJSON(w, resp, http.StatusOK)
}
