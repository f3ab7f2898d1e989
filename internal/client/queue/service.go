// Package queue реализует durable offline очередь check-in с at-least-once доставкой.
package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/geocheckin/internal/client/storage"
	"github.com/iudanet/geocheckin/internal/crypto"
	"github.com/iudanet/geocheckin/internal/models"
	"github.com/iudanet/geocheckin/internal/validation"
	"github.com/iudanet/geocheckin/pkg/api"
)

//go:generate moq -out submitter_mock.go . Submitter

// Submitter отправляет запись на удаленный сервер
type Submitter interface {
	SubmitCheckin(ctx context.Context, rec *models.CheckinRecord) (*api.CheckinResponse, error)
}

// Config политика очереди
type Config struct {
	// Capacity максимальное число записей в очереди
	Capacity int
	// InterRecordDelay пауза между отправками соседних записей
	InterRecordDelay time.Duration
	// SubmitTimeout таймаут отправки одной записи
	SubmitTimeout time.Duration
	// MaxRetries после стольких неудач запись переходит в failed
	MaxRetries uint32
}

// DefaultConfig returns the production queue policy.
func DefaultConfig() Config {
	return Config{
		Capacity:         50,
		InterRecordDelay: 500 * time.Millisecond,
		SubmitTimeout:    30 * time.Second,
		MaxRetries:       models.MaxRetryCount,
	}
}

// Service offline очередь check-in поверх durable хранилища.
// Все изменения сначала фиксируются в хранилище, затем возвращаются вызывающему.
type Service struct {
	store     storage.QueueStorage
	meta      storage.MetadataStorage
	submitter Submitter
	logger    *slog.Logger
	now       func() time.Time
	cfg       Config

	// syncMu гарантирует единственный проход синхронизации
	syncMu sync.Mutex
}

// NewService creates a queue service
func NewService(store storage.QueueStorage, meta storage.MetadataStorage, submitter Submitter, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		meta:      meta,
		submitter: submitter,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Enqueue validates and durably stores a new check-in. LocalID is generated
// when empty and returned to the caller.
func (s *Service) Enqueue(ctx context.Context, rec *models.CheckinRecord) (string, error) {
	rec, err := Prepare(rec, s.now())
	if err != nil {
		return "", err
	}
	rec.CreatedAtMs = s.now().UnixMilli()
	rec.UpdatedAtMs = rec.CreatedAtMs

	if err := s.store.InsertRecord(ctx, rec, s.cfg.Capacity); err != nil {
		if errors.Is(err, storage.ErrQueueFull) {
			return "", fmt.Errorf("%w: %d check-ins are waiting, connect to the network and sync before capturing more",
				err, s.cfg.Capacity)
		}
		return "", fmt.Errorf("failed to enqueue check-in: %w", err)
	}

	s.logger.Info("Check-in queued", "local_id", rec.LocalID, "order_id", rec.OrderID, "photos", len(rec.Photos))
	return rec.LocalID, nil
}

// Prepare returns a validated copy of rec ready for submission: LocalID and
// photo ids are assigned when empty, photo sizes and checksums are computed.
func Prepare(rec *models.CheckinRecord, now time.Time) (*models.CheckinRecord, error) {
	rec = rec.Clone()
	if rec.LocalID == "" {
		rec.LocalID = uuid.NewString()
	}

	rec.Status = models.StatusPending
	rec.RetryCount = 0
	rec.LastError = ""
	if rec.Position.CapturedAtMs == 0 {
		rec.Position.CapturedAtMs = now.UnixMilli()
	}

	for i := range rec.Photos {
		p := &rec.Photos[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.SizeBytes = int64(len(p.Data))
		p.Checksum = crypto.PhotoChecksum(p.Data)
	}

	if err := validation.ValidateCheckin(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Sync submits every pending record once, strictly one at a time in FIFO order.
// Failed records are skipped. Concurrent calls wait for the running pass.
func (s *Service) Sync(ctx context.Context) (*models.SyncReport, error) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	report := &models.SyncReport{Succeeded: []string{}, Failed: []string{}}

	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list queued check-ins: %w", err)
	}

	s.logger.Info("Starting queue sync", "queued", len(records))

	var (
		lastErr   error
		submitted int
	)
	for _, rec := range records {
		switch rec.Status {
		case models.StatusFailed:
			report.Skipped++
			continue
		case models.StatusSynced:
			// сервер принял запись, но удалить ее не успели
			if err := s.store.DeleteRecord(ctx, rec.LocalID); err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
				s.logger.Warn("Failed to drop synced check-in", "local_id", rec.LocalID, "error", err)
			}
			continue
		}

		if submitted > 0 && s.cfg.InterRecordDelay > 0 {
			select {
			case <-ctx.Done():
				s.saveState(ctx, report, ctx.Err())
				return report, ctx.Err()
			case <-time.After(s.cfg.InterRecordDelay):
			}
		}

		ok, err := s.syncRecord(ctx, rec.LocalID)
		if errors.Is(err, errSkipped) {
			continue
		}
		submitted++

		if ctx.Err() != nil {
			s.saveState(ctx, report, ctx.Err())
			return report, ctx.Err()
		}

		if ok {
			report.Succeeded = append(report.Succeeded, rec.LocalID)
			continue
		}
		report.Failed = append(report.Failed, rec.LocalID)
		lastErr = err
	}

	s.saveState(ctx, report, lastErr)
	s.logger.Info("Queue sync completed",
		"succeeded", len(report.Succeeded),
		"failed", len(report.Failed),
		"skipped", report.Skipped)

	return report, nil
}

var errSkipped = errors.New("record skipped")

// syncRecord отправляет одну запись. Возвращает true, если сервер ее принял.
func (s *Service) syncRecord(ctx context.Context, localID string) (bool, error) {
	_, err := s.store.UpdateRecord(ctx, localID, func(r *models.CheckinRecord) error {
		if r.Status != models.StatusPending {
			return errSkipped
		}
		r.Status = models.StatusSyncing
		r.UpdatedAtMs = s.now().UnixMilli()
		return nil
	})
	if err != nil {
		if errors.Is(err, errSkipped) || errors.Is(err, storage.ErrRecordNotFound) {
			// запись удалили или она поменяла статус, пока шла синхронизация
			return false, errSkipped
		}
		return false, s.recordFailure(ctx, localID, fmt.Errorf("failed to mark check-in as syncing: %w", err))
	}

	rec, err := s.store.GetRecord(ctx, localID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return false, errSkipped
		}
		return false, s.recordFailure(ctx, localID, fmt.Errorf("failed to load check-in: %w", err))
	}

	submitCtx, cancel := context.WithTimeout(ctx, s.cfg.SubmitTimeout)
	resp, submitErr := s.submitter.SubmitCheckin(submitCtx, rec)
	cancel()

	// хранилище обновляем даже если ctx уже отменен
	storeCtx := context.WithoutCancel(ctx)

	if submitErr == nil {
		if _, err := s.store.UpdateRecord(storeCtx, localID, func(r *models.CheckinRecord) error {
			r.Status = models.StatusSynced
			r.LastError = ""
			r.UpdatedAtMs = s.now().UnixMilli()
			return nil
		}); err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
			s.logger.Warn("Failed to mark check-in as synced", "local_id", localID, "error", err)
		}
		if err := s.store.DeleteRecord(storeCtx, localID); err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
			// повторная отправка безопасна: сервер идемпотентен по local_id
			s.logger.Warn("Failed to remove synced check-in", "local_id", localID, "error", err)
		}
		s.logger.Info("Check-in synced", "local_id", localID, "server_id", resp.ID, "duplicate", resp.Duplicate)
		return true, nil
	}

	if ctx.Err() != nil {
		// отмена вызывающей стороной не считается попыткой
		if _, err := s.store.UpdateRecord(storeCtx, localID, func(r *models.CheckinRecord) error {
			if r.Status == models.StatusSyncing {
				r.Status = models.StatusPending
			}
			return nil
		}); err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
			s.logger.Warn("Failed to revert cancelled check-in", "local_id", localID, "error", err)
		}
		return false, ctx.Err()
	}

	return false, s.recordFailure(storeCtx, localID, submitErr)
}

// recordFailure увеличивает RetryCount и при достижении лимита переводит запись в failed
func (s *Service) recordFailure(ctx context.Context, localID string, cause error) error {
	rec, err := s.store.UpdateRecord(ctx, localID, func(r *models.CheckinRecord) error {
		r.RetryCount++
		r.LastError = cause.Error()
		r.UpdatedAtMs = s.now().UnixMilli()
		if r.RetryCount >= s.cfg.MaxRetries {
			r.Status = models.StatusFailed
		} else {
			r.Status = models.StatusPending
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to record sync failure", "local_id", localID, "cause", cause, "error", err)
		return cause
	}

	if rec.Status == models.StatusFailed {
		s.logger.Warn("Check-in reached retry limit, manual action required",
			"local_id", localID, "retries", rec.RetryCount, "error", cause)
	} else {
		s.logger.Warn("Check-in sync failed", "local_id", localID, "retries", rec.RetryCount, "error", cause)
	}
	return cause
}

func (s *Service) saveState(ctx context.Context, report *models.SyncReport, lastErr error) {
	if s.meta == nil {
		return
	}
	state := &storage.SyncState{
		LastSyncAtMs: s.now().UnixMilli(),
		Succeeded:    len(report.Succeeded),
		Failed:       len(report.Failed),
		Skipped:      report.Skipped,
	}
	if lastErr != nil {
		state.LastError = lastErr.Error()
	}
	if err := s.meta.SaveSyncState(context.WithoutCancel(ctx), state); err != nil {
		s.logger.Warn("Failed to save sync state", "error", err)
	}
}

// Retry moves a failed record back to pending with a fresh retry budget.
func (s *Service) Retry(ctx context.Context, localID string) (*models.CheckinRecord, error) {
	rec, err := s.store.UpdateRecord(ctx, localID, func(r *models.CheckinRecord) error {
		switch r.Status {
		case models.StatusSyncing:
			return ErrRecordBusy
		case models.StatusFailed:
		default:
			return ErrNotFailed
		}
		r.Status = models.StatusPending
		r.RetryCount = 0
		r.LastError = ""
		r.UpdatedAtMs = s.now().UnixMilli()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retry check-in %s: %w", localID, err)
	}

	s.logger.Info("Check-in scheduled for retry", "local_id", localID)
	return rec, nil
}

// Remove discards a queued record. Records being submitted cannot be removed.
func (s *Service) Remove(ctx context.Context, localID string) error {
	rec, err := s.store.GetRecord(ctx, localID)
	if err != nil {
		return fmt.Errorf("failed to remove check-in %s: %w", localID, err)
	}
	if rec.Status == models.StatusSyncing {
		return fmt.Errorf("failed to remove check-in %s: %w", localID, ErrRecordBusy)
	}

	if err := s.store.DeleteRecord(ctx, localID); err != nil {
		return fmt.Errorf("failed to remove check-in %s: %w", localID, err)
	}

	s.logger.Info("Check-in removed from queue", "local_id", localID, "status", rec.Status)
	return nil
}

// List returns queued records in FIFO order without photo bytes.
func (s *Service) List(ctx context.Context) ([]*models.CheckinRecord, error) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list queued check-ins: %w", err)
	}
	return records, nil
}

// Get returns a queued record with its photos.
func (s *Service) Get(ctx context.Context, localID string) (*models.CheckinRecord, error) {
	rec, err := s.store.GetRecord(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in %s: %w", localID, err)
	}
	return rec, nil
}

// PendingCount returns the number of records the next sync will submit.
func (s *Service) PendingCount(ctx context.Context) (int, error) {
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count queued check-ins: %w", err)
	}
	return counts[models.StatusPending], nil
}

// Stats returns queued record counts by status.
func (s *Service) Stats(ctx context.Context) (map[models.CheckinStatus]int, error) {
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count queued check-ins: %w", err)
	}
	return counts, nil
}

// LastSync returns the outcome of the previous sync pass.
func (s *Service) LastSync(ctx context.Context) (*storage.SyncState, error) {
	if s.meta == nil {
		return &storage.SyncState{}, nil
	}
	return s.meta.GetSyncState(ctx)
}

// Recover returns records left in the syncing state by a crash to pending.
// It must be called before the first Sync of a process.
func (s *Service) Recover(ctx context.Context) (int, error) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list queued check-ins: %w", err)
	}

	recovered := 0
	for _, rec := range records {
		if rec.Status != models.StatusSyncing {
			continue
		}
		_, err := s.store.UpdateRecord(ctx, rec.LocalID, func(r *models.CheckinRecord) error {
			if r.Status == models.StatusSyncing {
				r.Status = models.StatusPending
			}
			return nil
		})
		if err != nil {
			return recovered, fmt.Errorf("failed to recover check-in %s: %w", rec.LocalID, err)
		}
		recovered++
	}

	if recovered > 0 {
		s.logger.Info("Recovered interrupted check-ins", "count", recovered)
	}
	return recovered, nil
}
