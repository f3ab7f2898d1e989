package api

// WhoAmIResponse описывает владельца bearer токена
type WhoAmIResponse struct {
	ShipperID string `json:"shipper_id"` // идентификатор курьера из токена
	ExpiresAt int64  `json:"expires_at"` // unix seconds, 0 - без срока действия
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// HealthResponse ответ health check
type HealthResponse struct {
	Status string `json:"status"`
	Time   int64  `json:"time"` // unix ms
}
