package api

import "time"

// Имена полей multipart формы отправки check-in
const (
	FieldLocalID      = "local_id"
	FieldOrderID      = "order_id"
	FieldLatitude     = "latitude"
	FieldLongitude    = "longitude"
	FieldAccuracy     = "accuracy"
	FieldAltitude     = "altitude"
	FieldHeading      = "heading"
	FieldSpeed        = "speed"
	FieldCapturedAt   = "captured_at" // unix ms
	FieldSource       = "source"
	FieldNotes        = "notes"
	FieldAddressLabel = "address_label"
	FieldPhotos       = "photos"
	// FieldPhotoChecksums blake2b-256 hex, по одному значению на каждую часть photos в том же порядке
	FieldPhotoChecksums = "photo_checksums"
)

// CheckinResponse каноническая запись check-in, сохраненная сервером
type CheckinResponse struct {
	CreatedAt    time.Time `json:"created_at"`
	Altitude     *float64  `json:"altitude,omitempty"`
	Heading      *float64  `json:"heading,omitempty"`
	Speed        *float64  `json:"speed,omitempty"`
	ID           string    `json:"id"`
	LocalID      string    `json:"local_id"`
	OrderID      string    `json:"order_id"`
	ShipperID    string    `json:"shipper_id"`
	Source       string    `json:"source"`
	Notes        string    `json:"notes"`
	AddressLabel string    `json:"address_label,omitempty"`
	PhotoIDs     []string  `json:"photo_ids"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Accuracy     float64   `json:"accuracy"`
	CapturedAt   int64     `json:"captured_at"`
	// Duplicate true, если local_id уже был принят ранее (ответ 200 вместо 201)
	Duplicate bool `json:"duplicate"`
}

// Marker проекция check-in для карты
type Marker struct {
	Timestamp    time.Time `json:"timestamp"`
	ID           string    `json:"id"`
	OrderNumber  string    `json:"order_number"`
	ThumbnailRef string    `json:"thumbnail_ref,omitempty"`
	AddressLabel string    `json:"address_label"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
}

// MarkersResponse ответ на запрос по bounding box
type MarkersResponse struct {
	Markers   []Marker `json:"markers"`
	Count     int      `json:"count"`
	Truncated bool     `json:"truncated"` // достигнут limit, часть маркеров не вернулась
}

// Pagination положение страницы в истории
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

// HistoryResponse страница истории check-in курьера, новые первыми
type HistoryResponse struct {
	Checkins   []CheckinResponse `json:"checkins"`
	Pagination Pagination        `json:"pagination"`
}
