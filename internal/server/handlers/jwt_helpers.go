package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "geocheckin"

// contextKey тип для ключей контекста
type contextKey string

// ShipperIDKey ключ контекста с ID курьера из токена
const ShipperIDKey contextKey = "shipper_id"

// ErrInvalidToken is returned when a bearer token cannot be accepted
var ErrInvalidToken = errors.New("invalid token")

// ShipperClaims представляет JWT claims курьера
type ShipperClaims struct {
	ShipperID string `json:"shipper_id"`
	jwt.RegisteredClaims
}

// JWTConfig содержит конфигурацию для JWT
type JWTConfig struct {
	Secret []byte
	// AccessTokenTTL срок жизни токена, 0 - бессрочный
	AccessTokenTTL time.Duration
}

// GenerateAccessToken создает JWT токен курьера.
// Нулевой expiresAt означает токен без срока действия.
func GenerateAccessToken(cfg JWTConfig, shipperID string) (token string, expiresAt time.Time, err error) {
	if shipperID == "" {
		return "", time.Time{}, errors.New("shipper id cannot be empty")
	}

	now := time.Now()
	claims := ShipperClaims{
		ShipperID: shipperID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   shipperID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	if cfg.AccessTokenTTL > 0 {
		expiresAt = now.Add(cfg.AccessTokenTTL)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, expiresAt, nil
}

// ValidateAccessToken валидирует и парсит JWT токен курьера
func ValidateAccessToken(cfg JWTConfig, tokenString string) (*ShipperClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ShipperClaims{}, func(token *jwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.Secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*ShipperClaims)
	if !ok || !token.Valid || claims.ShipperID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// WithShipperID кладет ID курьера в контекст
func WithShipperID(ctx context.Context, shipperID string) context.Context {
	return context.WithValue(ctx, ShipperIDKey, shipperID)
}

// GetShipperID извлекает ID курьера из контекста
func GetShipperID(ctx context.Context) (string, bool) {
	shipperID, ok := ctx.Value(ShipperIDKey).(string)
	return shipperID, ok && shipperID != ""
}
