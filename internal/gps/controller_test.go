package gps

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSub подписка, управляемая тестом через буферизированный канал
type testSub struct {
	ch        chan Update
	cancelled atomic.Bool
	once      sync.Once
}

func newTestSub(updates ...Update) *testSub {
	s := &testSub{ch: make(chan Update, 16)}
	for _, u := range updates {
		s.ch <- u
	}
	return s
}

func (s *testSub) Updates() <-chan Update { return s.ch }

func (s *testSub) Cancel() { s.once.Do(func() { s.cancelled.Store(true) }) }

func fixAt(accuracy float64) Fix {
	return Fix{Latitude: 10.8231, Longitude: 106.6297, AccuracyMeters: accuracy, Timestamp: time.Now()}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.CoarseTimeout = 50 * time.Millisecond
	cfg.RefineDeadline = 80 * time.Millisecond
	cfg.FallbackDeadline = 80 * time.Millisecond
	return cfg
}

func TestCapture_CoarseGoodFixSettlesImmediately(t *testing.T) {
	provider := &LocationProviderMock{
		RequestPositionFunc: func(_ context.Context, highAccuracy bool, _, maxAge time.Duration) (Fix, error) {
			assert.False(t, highAccuracy)
			assert.Equal(t, 60*time.Second, maxAge)
			return fixAt(30), nil
		},
	}

	c := NewController(provider, fastConfig(), testLogger())
	fix, err := c.Capture(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 30.0, fix.AccuracyMeters)
	assert.Equal(t, StateSettled, c.Snapshot().State)
	assert.Empty(t, provider.WatchPositionCalls())
}

func TestCapture_RefinesUntilGoodAccuracy(t *testing.T) {
	sub := newTestSub(Update{Fix: fixAt(200)}, Update{Fix: fixAt(80)}, Update{Fix: fixAt(40)}, Update{Fix: fixAt(5)})
	provider := &LocationProviderMock{
		RequestPositionFunc: func(context.Context, bool, time.Duration, time.Duration) (Fix, error) {
			return fixAt(500), nil
		},
		WatchPositionFunc: func(_ context.Context, highAccuracy bool) (Subscription, error) {
			assert.True(t, highAccuracy)
			return sub, nil
		},
	}

	c := NewController(provider, fastConfig(), testLogger())
	fix, err := c.Capture(context.Background())
	require.NoError(t, err)

	// останавливаемся на первом хорошем фиксе
	assert.Equal(t, 40.0, fix.AccuracyMeters)
	assert.Equal(t, StateSettled, c.Snapshot().State)
	assert.True(t, sub.cancelled.Load(), "subscription must be torn down on settle")
}

func TestCapture_DeadlineKeepsBestNotLatest(t *testing.T) {
	sub := newTestSub(Update{Fix: fixAt(120)}, Update{Fix: fixAt(300)})
	provider := &LocationProviderMock{
		RequestPositionFunc: func(context.Context, bool, time.Duration, time.Duration) (Fix, error) {
			return fixAt(500), nil
		},
		WatchPositionFunc: func(context.Context, bool) (Subscription, error) {
			return sub, nil
		},
	}

	c := NewController(provider, fastConfig(), testLogger())
	fix, err := c.Capture(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 120.0, fix.AccuracyMeters)
	snap := c.Snapshot()
	assert.Equal(t, StateSettled, snap.State)
	require.NotNil(t, snap.Position)
	assert.Equal(t, 120.0, snap.Position.AccuracyMeters)
	assert.True(t, sub.cancelled.Load())
}

func TestCapture_PermissionDeniedFailsWithoutWatch(t *testing.T) {
	provider := &LocationProviderMock{
		RequestPositionFunc: func(context.Context, bool, time.Duration, time.Duration) (Fix, error) {
			return Fix{}, &LocationError{Code: CodePermissionDenied}
		},
	}

	c := NewController(provider, fastConfig(), testLogger())
	_, err := c.Capture(context.Background())
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))

	snap := c.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.Nil(t, snap.Position)
	assert.Empty(t, provider.WatchPositionCalls())

	var le *LocationError
	require.True(t, errors.As(err, &le))
	assert.Contains(t, le.Hint(), "allow location access")
}

func TestCapture_CoarseFailureFallsBackToWatch(t *testing.T) {
	sub := newTestSub(Update{Fix: fixAt(25)})
	provider := &LocationProviderMock{
		RequestPositionFunc: func(context.Context, bool, time.Duration, time.Duration) (Fix, error) {
			return Fix{}, &LocationError{Code: CodeTimeout}
		},
		WatchPositionFunc: func(context.Context, bool) (Subscription, error) {
			return sub, nil
		},
	}

	c := NewController(provider, fastConfig(), testLogger())
	fix, err := c.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25.0, fix.AccuracyMeters)
	assert.Len(t, provider.WatchPositionCalls(), 1)
}

func TestCapture_FailedOnlyWithoutAnyFix(t *testing.T) {
	tests := []struct {
		name     string
		coarse   error
		updates  []Update
		wantCode ErrorCode
	}{
		{
			name:     "terminal watch error",
			coarse:   &LocationError{Code: CodeTimeout},
			updates:  []Update{{Err: &LocationError{Code: CodeUnavailable}}},
			wantCode: CodeUnavailable,
		},
		{
			name:     "fallback deadline without fix",
			coarse:   &LocationError{Code: CodeUnavailable},
			wantCode: CodeTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := newTestSub(tt.updates...)
			provider := &LocationProviderMock{
				RequestPositionFunc: func(context.Context, bool, time.Duration, time.Duration) (Fix, error) {
					return Fix{}, tt.coarse
				},
				WatchPositionFunc: func(context.Context, bool) (Subscription, error) {
					return sub, nil
				},
			}

			c := NewController(provider, fastConfig(), testLogger())
			_, err := c.Capture(context.Background())
			require.Error(t, err)

			code, ok := codeOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, StateFailed, c.Snapshot().State)
			assert.True(t, sub.cancelled.Load())
		})
	}
}

func TestCapture_TerminalErrorAfterFixSettles(t *testing.T) {
	sub := newTestSub(Update{Err: &LocationError{Code: CodePermissionDenied}})
	provider := &LocationProviderMock{
		RequestPositionFunc: func(context.Context, bool, time.Duration, time.Duration) (Fix, error) {
			return fixAt(500), nil
		},
		WatchPositionFunc: func(context.Context, bool) (Subscription, error) {
			return sub, nil
		},
	}

	c := NewController(provider, fastConfig(), testLogger())
	fix, err := c.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 500.0, fix.AccuracyMeters)
	assert.Equal(t, StateSettled, c.Snapshot().State)
}

func TestCapture_TransientWatchErrorIgnored(t *testing.T) {
	sub := newTestSub(Update{Err: errors.New("sensor hiccup")}, Update{Fix: fixAt(10)})
	provider := &LocationProviderMock{
		RequestPositionFunc: func(context.Context, bool, time.Duration, time.Duration) (Fix, error) {
			return Fix{}, &LocationError{Code: CodeTimeout}
		},
		WatchPositionFunc: func(context.Context, bool) (Subscription, error) {
			return sub, nil
		},
	}

	c := NewController(provider, fastConfig(), testLogger())
	fix, err := c.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10.0, fix.AccuracyMeters)
}

func TestCapture_ClearCancelsSubscription(t *testing.T) {
	sub := newTestSub()
	watching := make(chan struct{})
	provider := &LocationProviderMock{
		RequestPositionFunc: func(context.Context, bool, time.Duration, time.Duration) (Fix, error) {
			return fixAt(500), nil
		},
		WatchPositionFunc: func(context.Context, bool) (Subscription, error) {
			close(watching)
			return sub, nil
		},
	}

	cfg := fastConfig()
	cfg.RefineDeadline = 10 * time.Second
	c := NewController(provider, cfg, testLogger())

	done := make(chan error, 1)
	go func() {
		_, err := c.Capture(context.Background())
		done <- err
	}()

	<-watching
	c.Clear()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrCaptureCleared)
	case <-time.After(2 * time.Second):
		t.Fatal("capture did not stop after Clear")
	}

	assert.True(t, sub.cancelled.Load())
	snap := c.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Position)
}

func TestCapture_ContextCancelled(t *testing.T) {
	sub := newTestSub()
	provider := &LocationProviderMock{
		RequestPositionFunc: func(context.Context, bool, time.Duration, time.Duration) (Fix, error) {
			return fixAt(500), nil
		},
		WatchPositionFunc: func(context.Context, bool) (Subscription, error) {
			return sub, nil
		},
	}

	cfg := fastConfig()
	cfg.RefineDeadline = 10 * time.Second
	c := NewController(provider, cfg, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := c.Capture(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StateIdle, c.Snapshot().State)
	assert.True(t, sub.cancelled.Load())
}

func TestCapture_PublishesProgress(t *testing.T) {
	provider := &LocationProviderMock{
		RequestPositionFunc: func(context.Context, bool, time.Duration, time.Duration) (Fix, error) {
			return fixAt(20), nil
		},
	}

	c := NewController(provider, fastConfig(), testLogger())
	_, err := c.Capture(context.Background())
	require.NoError(t, err)

	var states []State
	for len(c.Updates()) > 0 {
		states = append(states, (<-c.Updates()).State)
	}
	require.NotEmpty(t, states)
	assert.Equal(t, StateAcquiringCoarse, states[0])
	assert.Equal(t, StateSettled, states[len(states)-1])
}

func TestGeofence(t *testing.T) {
	target := &Target{Latitude: 10.8231, Longitude: 106.6297}

	tests := []struct {
		name   string
		fix    Fix
		within bool
	}{
		// 0.0004° широты ≈ 44 м
		{name: "inside radius", fix: Fix{Latitude: 10.8235, Longitude: 106.6297, AccuracyMeters: 10}, within: true},
		// 0.01° широты ≈ 1.1 км
		{name: "outside radius", fix: Fix{Latitude: 10.8331, Longitude: 106.6297, AccuracyMeters: 10}, within: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &LocationProviderMock{
				RequestPositionFunc: func(context.Context, bool, time.Duration, time.Duration) (Fix, error) {
					return tt.fix, nil
				},
			}
			cfg := fastConfig()
			cfg.Target = target

			c := NewController(provider, cfg, testLogger())
			_, err := c.Capture(context.Background())
			require.NoError(t, err)

			d, ok := c.DistanceToTarget()
			require.True(t, ok)
			assert.Greater(t, d, 0.0)
			assert.Equal(t, tt.within, c.WithinGeofence())
		})
	}
}

func TestGeofence_NoTarget(t *testing.T) {
	c := NewController(&LocationProviderMock{}, fastConfig(), testLogger())
	_, ok := c.DistanceToTarget()
	assert.False(t, ok)
	assert.False(t, c.WithinGeofence())
	assert.Equal(t, AccuracyUnknown, c.AccuracyLevel())
}

func TestClassifyAccuracy(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		accuracy float64
		want     AccuracyLevel
	}{
		{accuracy: 5, want: AccuracyGood},
		{accuracy: 50, want: AccuracyGood},
		{accuracy: 50.5, want: AccuracyAcceptable},
		{accuracy: 100, want: AccuracyAcceptable},
		{accuracy: 250, want: AccuracyPoor},
		{accuracy: -1, want: AccuracyUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyAccuracy(tt.accuracy, cfg), "accuracy %v", tt.accuracy)
	}
}

func TestTrack_UpdatesPositionUntilClear(t *testing.T) {
	sub := newTestSub(Update{Fix: fixAt(300)})
	provider := &LocationProviderMock{
		WatchPositionFunc: func(_ context.Context, highAccuracy bool) (Subscription, error) {
			assert.False(t, highAccuracy)
			return sub, nil
		},
	}

	c := NewController(provider, fastConfig(), testLogger())

	done := make(chan error, 1)
	go func() { done <- c.Track(context.Background()) }()

	require.Eventually(t, func() bool {
		s := c.Snapshot()
		return s.Position != nil && s.Tracking
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, AccuracyPoor, c.AccuracyLevel())

	c.Clear()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("tracking did not stop after Clear")
	}
	assert.True(t, sub.cancelled.Load())
	assert.False(t, c.Snapshot().Tracking)
}

func TestFix_Position(t *testing.T) {
	ts := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)
	alt := 12.0
	fix := Fix{Latitude: 1, Longitude: 2, AccuracyMeters: 3, Altitude: &alt, Timestamp: ts}

	pos := fix.Position()
	assert.Equal(t, ts.UnixMilli(), pos.CapturedAtMs)
	require.NotNil(t, pos.Altitude)
	assert.Equal(t, 12.0, *pos.Altitude)
	assert.Nil(t, pos.SpeedMps)
	assert.NoError(t, pos.Validate())

	// копия не разделяет память с фиксом
	alt = 99
	assert.Equal(t, 12.0, *pos.Altitude)
}
