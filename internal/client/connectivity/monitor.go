// Package connectivity определяет доступность сервера периодическим health probe.
package connectivity

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	// DefaultInterval период проверки доступности
	DefaultInterval = 15 * time.Second
	// DefaultProbeTimeout таймаут одной проверки
	DefaultProbeTimeout = 5 * time.Second
)

//go:generate moq -out prober_mock.go . Prober

// Prober проверяет доступность сервера. Ошибка означает offline.
type Prober interface {
	Health(ctx context.Context) error
}

// Monitor publishes online/offline transitions observed by probing the server.
type Monitor struct {
	prober       Prober
	logger       *slog.Logger
	changes      chan bool
	online       atomic.Bool
	known        atomic.Bool
	interval     time.Duration
	probeTimeout time.Duration
}

// NewMonitor creates a connectivity monitor
func NewMonitor(prober Prober, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		prober:       prober,
		logger:       logger,
		interval:     interval,
		probeTimeout: DefaultProbeTimeout,
		changes:      make(chan bool, 1),
	}
}

// Changes returns the transition channel. It is closed when Run returns.
// The channel holds only the latest state: a consumer that falls behind may
// miss intermediate transitions, e.g. offline, online, offline arrives as a
// single offline and the online edge is never observed. Consumers must treat
// each value as the current state, not as a complete history.
func (m *Monitor) Changes() <-chan bool {
	return m.changes
}

// Online reports the last observed state. False until the first probe completes.
func (m *Monitor) Online() bool {
	return m.online.Load()
}

// Check probes the server once and publishes a transition if the state changed.
func (m *Monitor) Check(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	err := m.prober.Health(probeCtx)
	cancel()

	online := err == nil
	prev := m.online.Swap(online)
	first := !m.known.Swap(true)

	if first || prev != online {
		if online {
			m.logger.Info("Server is reachable")
		} else {
			m.logger.Warn("Server is unreachable", "error", err)
		}
		m.publish(online)
	}
	return online
}

// Run probes immediately and then every interval until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	defer close(m.changes)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

func (m *Monitor) publish(online bool) {
	for {
		select {
		case m.changes <- online:
			return
		default:
		}
		// выбрасываем устаревшее состояние
		select {
		case <-m.changes:
		default:
		}
	}
}
