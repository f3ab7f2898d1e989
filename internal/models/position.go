package models

import (
	"errors"
	"fmt"
)

// PositionSource указывает, откуда получены координаты
type PositionSource string

const (
	SourceDeviceSensor  PositionSource = "device_sensor"  // GPS устройства
	SourcePhotoMetadata PositionSource = "photo_metadata" // EXIF GPS из фотографии
	SourceManual        PositionSource = "manual"         // введены вручную
)

// ErrInvalidPosition is returned by GeoPosition.Validate.
var ErrInvalidPosition = errors.New("invalid position")

// GeoPosition представляет геопозицию check-in.
// Опциональные поля (Altitude, HeadingDegrees, SpeedMps) равны nil, если провайдер их не сообщил.
type GeoPosition struct {
	Altitude       *float64       `json:"altitude,omitempty"`        // Altitude высота над уровнем моря (м)
	HeadingDegrees *float64       `json:"heading_degrees,omitempty"` // HeadingDegrees направление движения
	SpeedMps       *float64       `json:"speed_mps,omitempty"`       // SpeedMps скорость (м/с)
	Source         PositionSource `json:"source"`                    // Source источник координат
	Latitude       float64        `json:"latitude"`                  // Latitude широта [-90, 90]
	Longitude      float64        `json:"longitude"`                 // Longitude долгота [-180, 180]
	AccuracyMeters float64        `json:"accuracy_meters"`           // AccuracyMeters радиус точности (м), >= 0
	CapturedAtMs   int64          `json:"captured_at_ms"`            // CapturedAtMs время фиксации (unix ms)
}

// Validate checks coordinate ranges and accuracy.
func (p *GeoPosition) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %f out of range", ErrInvalidPosition, p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %f out of range", ErrInvalidPosition, p.Longitude)
	}
	if p.AccuracyMeters < 0 {
		return fmt.Errorf("%w: negative accuracy %f", ErrInvalidPosition, p.AccuracyMeters)
	}
	switch p.Source {
	case SourceDeviceSensor, SourcePhotoMetadata, SourceManual:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidPosition, p.Source)
	}
	return nil
}

// Float64Ptr is a helper for optional position fields.
func Float64Ptr(v float64) *float64 {
	return &v
}
