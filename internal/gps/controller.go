// Package gps реализует захват позиции с постепенным уточнением точности:
// быстрый грубый фикс, затем подписка высокой точности до хорошего фикса или дедлайна.
package gps

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/geocheckin/internal/geo"
)

// State состояние автомата захвата
type State string

const (
	StateIdle             State = "idle"
	StateAcquiringCoarse  State = "acquiring_coarse"
	StateAcquiringRefined State = "acquiring_refined"
	StateSettled          State = "settled"
	StateFailed           State = "failed"
)

// AccuracyLevel качественная оценка точности фикса
type AccuracyLevel string

const (
	AccuracyGood       AccuracyLevel = "good"
	AccuracyAcceptable AccuracyLevel = "acceptable"
	AccuracyPoor       AccuracyLevel = "poor"
	AccuracyUnknown    AccuracyLevel = "unknown"
)

// Status снимок состояния контроллера
type Status struct {
	Err      error
	Position *Fix // лучший фикс захвата или последний фикс фонового трекинга
	State    State
	Tracking bool
}

const updatesBuffer = 16

// Controller управляет захватом позиции через LocationProvider.
// Методы безопасны для конкурентного вызова; одновременно активен только один захват.
type Controller struct {
	provider LocationProvider
	logger   *slog.Logger
	now      func() time.Time
	updates  chan Status

	cancelCapture context.CancelFunc
	cancelTrack   context.CancelFunc

	position *Fix
	err      error
	state    State
	cfg      Config

	mu         sync.Mutex
	generation uint64
	trackID    uint64
}

// NewController creates a controller in the idle state.
func NewController(provider LocationProvider, cfg Config, logger *slog.Logger) *Controller {
	return &Controller{
		provider: provider,
		cfg:      cfg.withDefaults(),
		logger:   logger,
		now:      time.Now,
		updates:  make(chan Status, updatesBuffer),
		state:    StateIdle,
	}
}

// Updates returns the progress channel. Sends never block: a slow reader misses
// intermediate states but can always call Snapshot.
func (c *Controller) Updates() <-chan Status {
	return c.updates
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Status {
	s := Status{
		State:    c.state,
		Err:      c.err,
		Tracking: c.cancelTrack != nil,
	}
	if c.position != nil {
		p := *c.position
		s.Position = &p
	}
	return s
}

func (c *Controller) publishLocked() {
	select {
	case c.updates <- c.snapshotLocked():
	default:
	}
}

// Capture runs one acquisition and blocks until it settles or fails.
// A capture already in progress is cancelled first.
func (c *Controller) Capture(ctx context.Context) (Fix, error) {
	captureCtx, gen := c.begin(ctx)
	defer c.finish(gen)

	start := c.now()
	coarseCtx, cancelCoarse := context.WithTimeout(captureCtx, c.cfg.CoarseTimeout)
	fix, err := c.provider.RequestPosition(coarseCtx, false, c.cfg.CoarseTimeout, c.cfg.CoarseMaxAge)
	cancelCoarse()

	deadline := start.Add(c.cfg.RefineDeadline)
	switch {
	case captureCtx.Err() != nil:
		return Fix{}, c.abort(ctx, gen)
	case err == nil:
		c.observe(gen, fix)
		if fix.AccuracyMeters <= c.cfg.GoodAccuracy {
			return c.settle(gen)
		}
	case IsPermissionDenied(err):
		return Fix{}, c.fail(gen, err)
	default:
		// быстрый фикс не удался - сразу пробуем высокую точность
		c.logger.Debug("Coarse fix failed, falling back to high accuracy watch", "error", err)
		deadline = start.Add(c.cfg.FallbackDeadline)
	}

	if !c.transition(gen, StateAcquiringRefined) {
		return Fix{}, ErrCaptureCleared
	}

	sub, err := c.provider.WatchPosition(captureCtx, true)
	if err != nil {
		if captureCtx.Err() != nil {
			return Fix{}, c.abort(ctx, gen)
		}
		return c.settleOrFail(gen, fmt.Errorf("failed to watch position: %w", err))
	}
	defer sub.Cancel()

	timer := time.NewTimer(deadline.Sub(c.now()))
	defer timer.Stop()

	for {
		select {
		case <-captureCtx.Done():
			return Fix{}, c.abort(ctx, gen)

		case <-timer.C:
			return c.settleOrFail(gen, &LocationError{Code: CodeTimeout, Message: "no fix before deadline"})

		case u, ok := <-sub.Updates():
			if !ok {
				return c.settleOrFail(gen, &LocationError{Code: CodeUnavailable, Message: "subscription closed"})
			}
			if u.Err != nil {
				code, _ := codeOf(u.Err)
				if c.hasFix(gen) || IsTerminal(u.Err) || code == CodeTimeout {
					return c.settleOrFail(gen, u.Err)
				}
				c.logger.Debug("Transient location error", "error", u.Err)
				continue
			}

			c.observe(gen, u.Fix)
			if u.Fix.AccuracyMeters <= c.cfg.GoodAccuracy || !c.now().Before(deadline) {
				return c.settle(gen)
			}
		}
	}
}

// Clear cancels any capture or background tracking and resets to idle.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	if c.cancelCapture != nil {
		c.cancelCapture()
		c.cancelCapture = nil
	}
	if c.cancelTrack != nil {
		c.cancelTrack()
		c.cancelTrack = nil
	}
	c.state = StateIdle
	c.position = nil
	c.err = nil
	c.publishLocked()
}

// Track runs a battery-friendly low-accuracy watch that keeps the current
// position fresh. It blocks until ctx is done, Clear is called or the
// provider closes the subscription.
func (c *Controller) Track(ctx context.Context) error {
	trackCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancelTrack != nil {
		c.cancelTrack()
	}
	c.trackID++
	id := c.trackID
	c.cancelTrack = cancel
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.trackID == id {
			c.cancelTrack = nil
		}
		c.mu.Unlock()
	}()

	sub, err := c.provider.WatchPosition(trackCtx, false)
	if err != nil {
		return fmt.Errorf("failed to start background tracking: %w", err)
	}
	defer sub.Cancel()

	for {
		select {
		case <-trackCtx.Done():
			return nil
		case u, ok := <-sub.Updates():
			if !ok {
				return nil
			}
			if u.Err != nil {
				c.logger.Warn("Background GPS error", "error", u.Err)
				continue
			}
			c.mu.Lock()
			// активный захват владеет позицией
			if c.cancelCapture == nil {
				fix := u.Fix
				c.position = &fix
				c.publishLocked()
			}
			c.mu.Unlock()
		}
	}
}

// AccuracyLevel classifies the current position accuracy.
func (c *Controller) AccuracyLevel() AccuracyLevel {
	s := c.Snapshot()
	if s.Position == nil {
		return AccuracyUnknown
	}
	return ClassifyAccuracy(s.Position.AccuracyMeters, c.cfg)
}

// ClassifyAccuracy maps an accuracy radius onto the configured levels.
func ClassifyAccuracy(accuracy float64, cfg Config) AccuracyLevel {
	cfg = cfg.withDefaults()
	switch {
	case accuracy < 0:
		return AccuracyUnknown
	case accuracy <= cfg.GoodAccuracy:
		return AccuracyGood
	case accuracy <= cfg.AcceptableAccuracy:
		return AccuracyAcceptable
	default:
		return AccuracyPoor
	}
}

// DistanceToTarget returns the great-circle distance from the current position
// to the configured target.
func (c *Controller) DistanceToTarget() (float64, bool) {
	s := c.Snapshot()
	if s.Position == nil || c.cfg.Target == nil {
		return 0, false
	}
	return geo.Haversine(s.Position.Latitude, s.Position.Longitude, c.cfg.Target.Latitude, c.cfg.Target.Longitude), true
}

// WithinGeofence reports whether the current position is inside the target radius.
// The result is advisory and never blocks a submission.
func (c *Controller) WithinGeofence() bool {
	d, ok := c.DistanceToTarget()
	return ok && d <= c.cfg.GeofenceRadius
}

func (c *Controller) begin(ctx context.Context) (context.Context, uint64) {
	captureCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelCapture != nil {
		c.cancelCapture()
	}
	c.generation++
	c.cancelCapture = cancel
	c.state = StateAcquiringCoarse
	c.position = nil
	c.err = nil
	c.publishLocked()

	return captureCtx, c.generation
}

// finish освобождает контекст захвата, если он все еще текущий
func (c *Controller) finish(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation == gen && c.cancelCapture != nil {
		c.cancelCapture()
		c.cancelCapture = nil
	}
}

func (c *Controller) transition(gen uint64, state State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return false
	}
	c.state = state
	c.publishLocked()
	return true
}

// observe сохраняет фикс, если он точнее лучшего известного
func (c *Controller) observe(gen uint64, fix Fix) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return
	}
	if c.position == nil || fix.AccuracyMeters < c.position.AccuracyMeters {
		f := fix
		c.position = &f
	}
	c.publishLocked()
}

func (c *Controller) hasFix(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation == gen && c.position != nil
}

func (c *Controller) settle(gen uint64) (Fix, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return Fix{}, ErrCaptureCleared
	}
	if c.position == nil {
		c.state = StateFailed
		c.err = &LocationError{Code: CodeUnavailable}
		c.publishLocked()
		return Fix{}, c.err
	}
	c.state = StateSettled
	c.err = nil
	c.publishLocked()
	c.logger.Debug("Position settled", "accuracy", c.position.AccuracyMeters)
	return *c.position, nil
}

func (c *Controller) fail(gen uint64, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return ErrCaptureCleared
	}
	c.state = StateFailed
	c.err = err
	c.publishLocked()
	c.logger.Warn("Position capture failed", "error", err)
	return err
}

// settleOrFail завершает захват лучшим фиксом, а без фиксов переводит в failed
func (c *Controller) settleOrFail(gen uint64, err error) (Fix, error) {
	if c.hasFix(gen) {
		return c.settle(gen)
	}
	return Fix{}, c.fail(gen, err)
}

// abort вызывается при отмене контекста захвата
func (c *Controller) abort(parent context.Context, gen uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return ErrCaptureCleared
	}
	c.state = StateIdle
	c.publishLocked()
	if err := parent.Err(); err != nil {
		return err
	}
	return context.Canceled
}
