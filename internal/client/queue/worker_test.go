package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/geocheckin/internal/models"
	"github.com/iudanet/geocheckin/pkg/api"
)

func TestWorker_SyncsWhenConnectionRestored(t *testing.T) {
	sub := &SubmitterMock{
		SubmitCheckinFunc: func(ctx context.Context, rec *models.CheckinRecord) (*api.CheckinResponse, error) {
			return accepted(rec), nil
		},
	}
	svc, _ := newTestService(t, sub, testConfig())

	_, err := svc.Enqueue(context.Background(), newCheckin("ORD-1"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	online := make(chan bool)
	w := NewWorker(svc, time.Hour, testLogger())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, online) }()

	// пока офлайн, явный запрос откладывается
	w.Trigger()
	online <- false
	assert.Empty(t, sub.SubmitCheckinCalls())

	online <- true
	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("sync was not started after reconnect")
	}

	pending, err := svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, pending)
	assert.Len(t, sub.SubmitCheckinCalls(), 1)

	cancel()
	require.NoError(t, <-done)
}

func TestWorker_TriggerWithoutMonitor(t *testing.T) {
	sub := &SubmitterMock{
		SubmitCheckinFunc: func(ctx context.Context, rec *models.CheckinRecord) (*api.CheckinResponse, error) {
			return accepted(rec), nil
		},
	}
	svc, _ := newTestService(t, sub, testConfig())
	_, err := svc.Enqueue(context.Background(), newCheckin("ORD-1"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWorker(svc, 0, testLogger())
	go func() { _ = w.Run(ctx, nil) }()

	w.Trigger()
	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("triggered sync did not run")
	}
	assert.Len(t, sub.SubmitCheckinCalls(), 1)
}

func TestWorker_TickerSyncsWithoutMonitor(t *testing.T) {
	sub := &SubmitterMock{
		SubmitCheckinFunc: func(ctx context.Context, rec *models.CheckinRecord) (*api.CheckinResponse, error) {
			return accepted(rec), nil
		},
	}
	svc, _ := newTestService(t, sub, testConfig())
	_, err := svc.Enqueue(context.Background(), newCheckin("ORD-1"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWorker(svc, 20*time.Millisecond, testLogger())
	go func() { _ = w.Run(ctx, nil) }()

	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("periodic sync did not run")
	}

	pending, err := svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, pending)
	assert.Len(t, sub.SubmitCheckinCalls(), 1)
}

func TestWorker_TickerWaitsWhileOffline(t *testing.T) {
	sub := &SubmitterMock{
		SubmitCheckinFunc: func(ctx context.Context, rec *models.CheckinRecord) (*api.CheckinResponse, error) {
			return accepted(rec), nil
		},
	}
	svc, _ := newTestService(t, sub, testConfig())
	_, err := svc.Enqueue(context.Background(), newCheckin("ORD-1"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	online := make(chan bool)
	w := NewWorker(svc, 10*time.Millisecond, testLogger())
	go func() { _ = w.Run(ctx, online) }()

	online <- false
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, sub.SubmitCheckinCalls())

	// монитор остановлен: состояние неизвестно, таймер снова работает
	close(online)
	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("periodic sync did not resume after the monitor stopped")
	}
	assert.Len(t, sub.SubmitCheckinCalls(), 1)
}
