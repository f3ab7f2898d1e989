package gps

import (
	"context"
	"time"

	"github.com/iudanet/geocheckin/internal/models"
)

// Fix сырой фикс от провайдера геолокации
type Fix struct {
	Timestamp      time.Time `json:"timestamp"`
	Altitude       *float64  `json:"altitude,omitempty"`
	Heading        *float64  `json:"heading,omitempty"`
	Speed          *float64  `json:"speed,omitempty"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters float64   `json:"accuracy"`
}

// Position converts the fix into a check-in position sourced from the device sensor.
func (f Fix) Position() models.GeoPosition {
	pos := models.GeoPosition{
		Latitude:       f.Latitude,
		Longitude:      f.Longitude,
		AccuracyMeters: f.AccuracyMeters,
		Source:         models.SourceDeviceSensor,
	}
	if f.Altitude != nil {
		pos.Altitude = models.Float64Ptr(*f.Altitude)
	}
	if f.Heading != nil {
		pos.HeadingDegrees = models.Float64Ptr(*f.Heading)
	}
	if f.Speed != nil {
		pos.SpeedMps = models.Float64Ptr(*f.Speed)
	}
	if !f.Timestamp.IsZero() {
		pos.CapturedAtMs = f.Timestamp.UnixMilli()
	}
	return pos
}

// Update одно событие подписки: либо фикс, либо ошибка
type Update struct {
	Err error
	Fix Fix
}

// Subscription непрерывная подписка на обновления позиции.
// Cancel идемпотентен; после Cancel канал Updates закрывается провайдером.
type Subscription interface {
	Updates() <-chan Update
	Cancel()
}

//go:generate moq -out provider_mock.go . LocationProvider

// LocationProvider источник геопозиции устройства
type LocationProvider interface {
	// RequestPosition возвращает один фикс. maxAge разрешает вернуть кешированный фикс не старше указанного.
	RequestPosition(ctx context.Context, highAccuracy bool, timeout, maxAge time.Duration) (Fix, error)
	// WatchPosition начинает непрерывную подписку до Cancel или отмены ctx.
	WatchPosition(ctx context.Context, highAccuracy bool) (Subscription, error)
}
