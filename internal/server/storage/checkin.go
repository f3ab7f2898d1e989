package storage

import (
	"context"
	"time"
)

//go:generate moq -out checkin_mock.go . CheckinStorage

// Checkin каноническая запись check-in на сервере
type Checkin struct {
	CreatedAt    time.Time
	Altitude     *float64
	Heading      *float64
	Speed        *float64
	ID           string
	LocalID      string
	ShipperID    string
	OrderID      string
	Source       string
	Notes        string
	AddressLabel string
	Photos       []PhotoMeta
	Latitude     float64
	Longitude    float64
	Accuracy     float64
	CapturedAtMs int64
}

// PhotoMeta метаданные фото; байты лежат в PhotoStore
type PhotoMeta struct {
	ID        string
	CheckinID string
	Filename  string
	MimeType  string
	Checksum  string
	Size      int64
	Position  int
}

// MarkerQuery параметры выборки по bounding box
type MarkerQuery struct {
	From      time.Time // нулевое значение - без нижней границы
	To        time.Time // нулевое значение - без верхней границы
	ShipperID string    // пустая строка - записи всех курьеров
	MinLng    float64
	MinLat    float64
	MaxLng    float64
	MaxLat    float64
	Limit     int
}

// HistoryQuery страница истории одного курьера
type HistoryQuery struct {
	ShipperID string
	Offset    int
	Limit     int
}

// CheckinStorage defines interface for check-in persistence
type CheckinStorage interface {
	// SaveCheckin stores a new check-in with its photo metadata.
	// If a check-in with the same LocalID exists, nothing is written and the
	// stored record is returned with created=false.
	// Returns ErrLocalIDConflict if LocalID belongs to a different shipper.
	SaveCheckin(ctx context.Context, c *Checkin) (stored *Checkin, created bool, err error)

	// GetCheckin retrieves a check-in by server ID
	// Returns ErrCheckinNotFound if the check-in does not exist
	GetCheckin(ctx context.Context, id string) (*Checkin, error)

	// GetCheckinByLocalID retrieves a check-in by client idempotency key
	// Returns ErrCheckinNotFound if the check-in does not exist
	GetCheckinByLocalID(ctx context.Context, localID string) (*Checkin, error)

	// QueryMarkers returns check-ins inside the box ordered by capture time, newest first.
	QueryMarkers(ctx context.Context, q MarkerQuery) ([]*Checkin, error)

	// ListCheckins returns one page of the shipper's check-ins, newest capture first,
	// and the total number of check-ins the shipper has.
	ListCheckins(ctx context.Context, q HistoryQuery) ([]*Checkin, int, error)

	// GetPhotoMeta retrieves photo metadata
	// Returns ErrPhotoNotFound if the photo does not exist
	GetPhotoMeta(ctx context.Context, photoID string) (*PhotoMeta, error)

	// Ping checks database availability
	Ping(ctx context.Context) error
}

//go:generate moq -out photo_mock.go . PhotoStore

// PhotoStore stores photo bytes by photo ID
type PhotoStore interface {
	// PutPhoto stores data under id. Storing the same id twice overwrites it.
	PutPhoto(ctx context.Context, id, mimeType string, data []byte) error

	// GetPhoto returns photo bytes
	// Returns ErrPhotoNotFound if the photo does not exist
	GetPhoto(ctx context.Context, id string) ([]byte, error)

	// DeletePhoto removes photo bytes; missing photos are not an error
	DeletePhoto(ctx context.Context, id string) error
}
