package connectivity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMonitor_CheckPublishesTransitions(t *testing.T) {
	var down atomic.Bool
	prober := &ProberMock{
		HealthFunc: func(ctx context.Context) error {
			if down.Load() {
				return errors.New("connection refused")
			}
			return nil
		},
	}
	m := NewMonitor(prober, time.Hour, testLogger())
	ctx := context.Background()

	assert.False(t, m.Online())
	assert.True(t, m.Check(ctx))
	assert.True(t, <-m.Changes())

	// состояние не изменилось, события нет
	m.Check(ctx)
	select {
	case v := <-m.Changes():
		t.Fatalf("unexpected transition %v", v)
	default:
	}

	down.Store(true)
	assert.False(t, m.Check(ctx))
	assert.False(t, <-m.Changes())
	assert.False(t, m.Online())
	assert.Len(t, prober.HealthCalls(), 3)
}

func TestMonitor_FirstProbeOfflineIsPublished(t *testing.T) {
	prober := &ProberMock{
		HealthFunc: func(ctx context.Context) error { return errors.New("no route") },
	}
	m := NewMonitor(prober, time.Hour, testLogger())

	m.Check(context.Background())
	assert.False(t, <-m.Changes())
}

func TestMonitor_SlowConsumerSeesLatestState(t *testing.T) {
	var down atomic.Bool
	prober := &ProberMock{
		HealthFunc: func(ctx context.Context) error {
			if down.Load() {
				return errors.New("down")
			}
			return nil
		},
	}
	m := NewMonitor(prober, time.Hour, testLogger())
	ctx := context.Background()

	m.Check(ctx)
	down.Store(true)
	m.Check(ctx)

	assert.False(t, <-m.Changes())
}

func TestMonitor_RunClosesChannel(t *testing.T) {
	prober := &ProberMock{
		HealthFunc: func(ctx context.Context) error { return nil },
	}
	m := NewMonitor(prober, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	select {
	case v := <-m.Changes():
		assert.True(t, v)
	case <-time.After(time.Second):
		t.Fatal("no initial state published")
	}

	cancel()
	require.NoError(t, <-done)
	_, ok := <-m.Changes()
	assert.False(t, ok)
}

func TestMonitor_SlowConsumerMissesOnlineEdge(t *testing.T) {
	var down atomic.Bool
	down.Store(true)
	prober := &ProberMock{
		HealthFunc: func(ctx context.Context) error {
			if down.Load() {
				return errors.New("down")
			}
			return nil
		},
	}
	m := NewMonitor(prober, time.Hour, testLogger())
	ctx := context.Background()

	m.Check(ctx)
	down.Store(false)
	m.Check(ctx)
	down.Store(true)
	m.Check(ctx)

	// три перехода, в канале только последнее состояние
	assert.False(t, <-m.Changes())
	select {
	case v := <-m.Changes():
		t.Fatalf("unexpected extra transition %v", v)
	default:
	}
	require.Len(t, prober.HealthCalls(), 3)
}
