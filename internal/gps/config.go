package gps

import "time"

// Target точка доставки для geofence проверки
type Target struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Config параметры захвата позиции
type Config struct {
	Target *Target

	// CoarseTimeout таймаут быстрого фикса низкой точности
	CoarseTimeout time.Duration
	// CoarseMaxAge допустимый возраст кешированного фикса
	CoarseMaxAge time.Duration
	// RefineDeadline жесткий дедлайн уточнения, отсчитывается от начала захвата
	RefineDeadline time.Duration
	// FallbackDeadline дедлайн уточнения, если быстрый фикс не удался
	FallbackDeadline time.Duration

	GoodAccuracy       float64 // метры
	AcceptableAccuracy float64 // метры
	GeofenceRadius     float64 // метры
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		CoarseTimeout:      5 * time.Second,
		CoarseMaxAge:       60 * time.Second,
		RefineDeadline:     10 * time.Second,
		FallbackDeadline:   15 * time.Second,
		GoodAccuracy:       50,
		AcceptableAccuracy: 100,
		GeofenceRadius:     100,
	}
}

// withDefaults подставляет значения по умолчанию для незаданных полей
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CoarseTimeout <= 0 {
		c.CoarseTimeout = d.CoarseTimeout
	}
	if c.CoarseMaxAge <= 0 {
		c.CoarseMaxAge = d.CoarseMaxAge
	}
	if c.RefineDeadline <= 0 {
		c.RefineDeadline = d.RefineDeadline
	}
	if c.FallbackDeadline <= 0 {
		c.FallbackDeadline = d.FallbackDeadline
	}
	if c.GoodAccuracy <= 0 {
		c.GoodAccuracy = d.GoodAccuracy
	}
	if c.AcceptableAccuracy <= 0 {
		c.AcceptableAccuracy = d.AcceptableAccuracy
	}
	if c.GeofenceRadius <= 0 {
		c.GeofenceRadius = d.GeofenceRadius
	}
	return c
}
