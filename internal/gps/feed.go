package gps

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"
)

// FeedProvider читает фиксы из JSON lines файла (один Fix на строку).
// Используется CLI как источник позиции, записанный внешним GPS логгером.
type FeedProvider struct {
	path     string
	interval time.Duration
}

// NewFeedProvider creates a provider replaying fixes from path, one every interval.
func NewFeedProvider(path string, interval time.Duration) *FeedProvider {
	return &FeedProvider{path: path, interval: interval}
}

// RequestPosition returns the first fix in the feed.
func (p *FeedProvider) RequestPosition(ctx context.Context, _ bool, _, _ time.Duration) (Fix, error) {
	fixes, err := p.load()
	if err != nil {
		return Fix{}, err
	}
	if err := ctx.Err(); err != nil {
		return Fix{}, &LocationError{Code: CodeTimeout, Message: err.Error()}
	}
	return fixes[0], nil
}

// WatchPosition replays the feed until it is exhausted or cancelled.
func (p *FeedProvider) WatchPosition(ctx context.Context, _ bool) (Subscription, error) {
	fixes, err := p.load()
	if err != nil {
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &feedSubscription{
		updates: make(chan Update),
		cancel:  cancel,
	}

	go func() {
		defer close(sub.updates)
		for i, fix := range fixes {
			if i > 0 && p.interval > 0 {
				select {
				case <-subCtx.Done():
					return
				case <-time.After(p.interval):
				}
			}
			select {
			case <-subCtx.Done():
				return
			case sub.updates <- Update{Fix: fix}:
			}
		}
	}()

	return sub, nil
}

func (p *FeedProvider) load() ([]Fix, error) {
	f, err := os.Open(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, &LocationError{Code: CodePermissionDenied, Message: err.Error()}
		}
		return nil, &LocationError{Code: CodeUnavailable, Message: err.Error()}
	}
	defer f.Close()

	var fixes []Fix
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var fix Fix
		if err := json.Unmarshal(scanner.Bytes(), &fix); err != nil {
			return nil, &LocationError{Code: CodeUnavailable, Message: fmt.Sprintf("line %d: %v", line, err)}
		}
		fixes = append(fixes, fix)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LocationError{Code: CodeUnavailable, Message: err.Error()}
	}
	if len(fixes) == 0 {
		return nil, &LocationError{Code: CodeUnavailable, Message: "feed is empty"}
	}

	return fixes, nil
}

type feedSubscription struct {
	updates chan Update
	cancel  context.CancelFunc
	once    sync.Once
}

func (s *feedSubscription) Updates() <-chan Update { return s.updates }

func (s *feedSubscription) Cancel() { s.once.Do(s.cancel) }
