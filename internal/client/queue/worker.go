package queue

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSyncInterval период повторной синхронизации, пока есть сеть и ожидающие записи
const DefaultSyncInterval = 30 * time.Second

// Worker запускает синхронизацию очереди при восстановлении сети,
// по таймеру и по явному запросу.
type Worker struct {
	service  *Service
	logger   *slog.Logger
	trigger  chan struct{}
	reports  chan struct{}
	interval time.Duration
}

// NewWorker creates a background sync worker
func NewWorker(service *Service, interval time.Duration, logger *slog.Logger) *Worker {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &Worker{
		service:  service,
		logger:   logger,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		reports:  make(chan struct{}, 1),
	}
}

// Trigger requests a sync pass. Requests are coalesced.
func (w *Worker) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// Done signals after every completed sync pass. Signals are coalesced.
func (w *Worker) Done() <-chan struct{} {
	return w.reports
}

// Run blocks until ctx is cancelled. online carries connectivity transitions;
// an offline to online transition starts a sync pass. A nil or closed online
// channel means the state is unknown and the worker behaves as if online.
// A Trigger received while offline is kept and served by the next online transition.
func (w *Worker) Run(ctx context.Context, online <-chan bool) error {
	if n, err := w.service.Recover(ctx); err != nil {
		w.logger.Error("Failed to recover interrupted check-ins", "error", err)
	} else if n > 0 {
		w.Trigger()
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	monitored := online != nil
	isOnline := false
	deferred := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case state, ok := <-online:
			if !ok {
				online = nil
				monitored = false
				continue
			}
			wasOnline := isOnline
			isOnline = state
			if isOnline && !wasOnline {
				if deferred {
					w.logger.Info("Connection restored, running deferred sync")
				} else {
					w.logger.Info("Connection restored, syncing queue")
				}
				deferred = false
				w.runSync(ctx)
			}

		case <-w.trigger:
			if monitored && !isOnline {
				w.logger.Debug("Sync requested while offline, deferred until connection is restored")
				deferred = true
				continue
			}
			w.runSync(ctx)

		case <-ticker.C:
			if monitored && !isOnline {
				continue
			}
			pending, err := w.service.PendingCount(ctx)
			if err != nil {
				w.logger.Warn("Failed to count pending check-ins", "error", err)
				continue
			}
			if pending > 0 {
				w.runSync(ctx)
			}
		}
	}
}

func (w *Worker) runSync(ctx context.Context) {
	report, err := w.service.Sync(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("Queue sync failed", "error", err)
		}
		return
	}
	if len(report.Succeeded)+len(report.Failed) > 0 {
		w.logger.Info("Queue sync pass finished",
			"succeeded", len(report.Succeeded), "failed", len(report.Failed))
	}
	select {
	case w.reports <- struct{}{}:
	default:
	}
}
