// Package capture собирает check-in: позиция (GPS, EXIF, ручной ввод) + фото + заметка,
// затем отправляет сразу или ставит в offline очередь.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/geocheckin/internal/exif"
	"github.com/iudanet/geocheckin/internal/gps"
	"github.com/iudanet/geocheckin/internal/models"
	"github.com/iudanet/geocheckin/pkg/api"
)

// ErrNoPosition is returned when neither GPS, photo metadata nor manual input gave a position
var ErrNoPosition = errors.New("no position available: enable location, attach a geotagged photo or enter coordinates")

//go:generate moq -out locator_mock.go . Locator
//go:generate moq -out submitter_mock.go . Submitter
//go:generate moq -out enqueuer_mock.go . Enqueuer

// Locator получает позицию с датчика
type Locator interface {
	Capture(ctx context.Context) (gps.Fix, error)
}

// Submitter отправляет запись на сервер
type Submitter interface {
	SubmitCheckin(ctx context.Context, rec *models.CheckinRecord) (*api.CheckinResponse, error)
}

// Enqueuer сохраняет запись в offline очередь
type Enqueuer interface {
	Enqueue(ctx context.Context, rec *models.CheckinRecord) (string, error)
}

// Request данные check-in, введенные курьером
type Request struct {
	// Manual координаты, введенные вручную; используются последними
	Manual       *models.GeoPosition
	OrderID      string
	Notes        string
	AddressLabel string
	Photos       []models.PhotoBlob
}

// Outcome how a check-in left the capture flow.
type Outcome string

const (
	OutcomeSubmitted Outcome = "submitted"
	OutcomeQueued    Outcome = "queued"
)

// Result итог check-in
type Result struct {
	Response *api.CheckinResponse // nil для OutcomeQueued
	Outcome  Outcome
	LocalID  string
	// SubmitError причина, по которой запись ушла в очередь при наличии сети
	SubmitError error
	Position    models.GeoPosition
}

// Service связывает GPS, EXIF, сервер и очередь
type Service struct {
	locator   Locator
	submitter Submitter
	queue     Enqueuer
	online    func() bool
	prepare   func(rec *models.CheckinRecord, now time.Time) (*models.CheckinRecord, error)
	logger    *slog.Logger
	timeout   time.Duration
}

// NewService creates a capture service. locator may be nil when the device
// has no location sensor; online may be nil, meaning always try to submit.
func NewService(
	locator Locator,
	submitter Submitter,
	queue Enqueuer,
	online func() bool,
	prepare func(rec *models.CheckinRecord, now time.Time) (*models.CheckinRecord, error),
	logger *slog.Logger,
) *Service {
	if online == nil {
		online = func() bool { return true }
	}
	return &Service{
		locator:   locator,
		submitter: submitter,
		queue:     queue,
		online:    online,
		prepare:   prepare,
		logger:    logger,
		timeout:   30 * time.Second,
	}
}

// ResolvePosition tries the device sensor first, then photo metadata, then manual input.
func (s *Service) ResolvePosition(ctx context.Context, req Request) (models.GeoPosition, error) {
	var gpsErr error
	if s.locator != nil {
		fix, err := s.locator.Capture(ctx)
		if err == nil {
			return fix.Position(), nil
		}
		if ctx.Err() != nil {
			return models.GeoPosition{}, ctx.Err()
		}
		gpsErr = err
		s.logger.Warn("GPS capture failed, trying photo metadata", "error", err)
	}

	if pos, ok := exif.ExtractFirst(req.Photos); ok {
		s.logger.Info("Using position from photo metadata", "accuracy", pos.AccuracyMeters)
		return *pos, nil
	}

	if req.Manual != nil {
		pos := *req.Manual
		pos.Source = models.SourceManual
		if err := pos.Validate(); err != nil {
			return models.GeoPosition{}, err
		}
		return pos, nil
	}

	if gpsErr != nil {
		var locErr *gps.LocationError
		if errors.As(gpsErr, &locErr) {
			return models.GeoPosition{}, fmt.Errorf("%w (%s)", ErrNoPosition, locErr.Hint())
		}
	}
	return models.GeoPosition{}, ErrNoPosition
}

// Checkin resolves the position and delivers the record. When the server is
// unreachable or the submission fails the record is queued; the record is
// never lost unless it is invalid or the queue is full.
func (s *Service) Checkin(ctx context.Context, req Request) (*Result, error) {
	pos, err := s.ResolvePosition(ctx, req)
	if err != nil {
		return nil, err
	}

	rec, err := s.prepare(&models.CheckinRecord{
		OrderID:      req.OrderID,
		Notes:        req.Notes,
		AddressLabel: req.AddressLabel,
		Photos:       req.Photos,
		Position:     pos,
	}, time.Now())
	if err != nil {
		return nil, err
	}

	res := &Result{LocalID: rec.LocalID, Position: rec.Position}

	if s.online() {
		submitCtx, cancel := context.WithTimeout(ctx, s.timeout)
		resp, err := s.submitter.SubmitCheckin(submitCtx, rec)
		cancel()
		if err == nil {
			s.logger.Info("Check-in submitted", "local_id", rec.LocalID, "server_id", resp.ID)
			res.Outcome = OutcomeSubmitted
			res.Response = resp
			return res, nil
		}
		s.logger.Warn("Check-in submission failed, queueing", "local_id", rec.LocalID, "error", err)
		res.SubmitError = err
	}

	if _, err := s.queue.Enqueue(context.WithoutCancel(ctx), rec); err != nil {
		return nil, err
	}
	res.Outcome = OutcomeQueued
	return res, nil
}
