package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidBounds is returned by Bounds.Validate.
var ErrInvalidBounds = errors.New("invalid bounds")

// CheckinMarker проекция check-in для карты (read side).
type CheckinMarker struct {
	Timestamp    time.Time `json:"timestamp"`
	ID           string    `json:"id"`
	OrderNumber  string    `json:"order_number"`
	ThumbnailRef string    `json:"thumbnail_ref,omitempty"`
	AddressLabel string    `json:"address_label"`
	Longitude    float64   `json:"longitude"`
	Latitude     float64   `json:"latitude"`
}

// Bounds географический прямоугольник видимой области карты.
type Bounds struct {
	MinLng float64 `json:"min_lng"`
	MinLat float64 `json:"min_lat"`
	MaxLng float64 `json:"max_lng"`
	MaxLat float64 `json:"max_lat"`
}

// Validate checks that the box is well-formed.
func (b Bounds) Validate() error {
	if b.MinLat < -90 || b.MaxLat > 90 || b.MinLng < -180 || b.MaxLng > 180 {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidBounds)
	}
	if b.MinLat > b.MaxLat || b.MinLng > b.MaxLng {
		return fmt.Errorf("%w: min greater than max", ErrInvalidBounds)
	}
	return nil
}

// Contains reports whether the point lies inside the box (edges included).
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// DateRange опциональный фильтр по времени check-in. Нулевые значения означают "без границы".
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// IsZero reports whether no bound is set.
func (d DateRange) IsZero() bool {
	return d.From.IsZero() && d.To.IsZero()
}

// ClusteredMarker группа маркеров, отрисовываемая как один значок.
// Пересчитывается на каждом проходе рендера и никогда не сохраняется.
type ClusteredMarker struct {
	ID        string   `json:"id"`
	MemberIDs []string `json:"member_ids"` // в порядке входного списка
	Longitude float64  `json:"longitude"`  // центроид
	Latitude  float64  `json:"latitude"`   // центроид
	Count     int      `json:"count"`
}
