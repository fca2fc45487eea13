package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a store change notification.
type EventType int

const (
	// EventKeyChanged indicates the value under Key was written.
	EventKeyChanged EventType = iota

	// EventKeyErased indicates the value under Key was removed.
	EventKeyErased
)

func (t EventType) String() string {
	switch t {
	case EventKeyChanged:
		return "changed"
	case EventKeyErased:
		return "erased"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by KV.Watch when a stored key changes.
type Event struct {
	Type EventType
	Key  string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (s *KV) Watch(ctx context.Context) (<-chan Event, error) {
	if s.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}

	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				s.log.Warn("watcher close", "error", err)
			}
		})
	}

	if err := watcher.Add(s.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", s.basePath, err)
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// The consumer re-reads the key anyway; a dropped duplicate is harmless.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("watcher error", "error", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				key := s.keyForPath(evt.Name)
				if key == "" {
					continue
				}
				switch {
				case evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					// A rename onto the key (atomic write) shows up as Create
					// for the key; a rename away from it is an erase.
					if _, err := os.Stat(evt.Name); err == nil {
						throttle.Enqueue(Event{Type: EventKeyChanged, Key: key}, send)
						continue
					}
					throttle.Enqueue(Event{Type: EventKeyErased, Key: key}, send)
				case evt.Op&(fsnotify.Create|fsnotify.Write) != 0:
					throttle.Enqueue(Event{Type: EventKeyChanged, Key: key}, send)
				}
			}
		}
	}()

	return events, nil
}

// keyForPath maps a file under the base path back to its key. Temp files and
// directories map to "".
func (s *KV) keyForPath(path string) string {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	if filepath.Dir(rel) != "." {
		return ""
	}
	if rel == tempDirName || filepath.Ext(rel) != "" {
		// Keys are bare names; catalog.db, catalog.log and friends are not drafts.
		return ""
	}
	return rel
}

// eventThrottle coalesces rapid change notifications so a follower redraws
// once per burst of writes instead of on every single one. Once Stop returns
// no flush is running and none will start, so the caller may close the
// channel send writes to.
type eventThrottle struct {
	mu       sync.Mutex
	timer    *time.Timer
	pending  map[string]EventType
	order    []string
	delay    time.Duration
	stopped  bool
	inflight sync.WaitGroup
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]EventType),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	if _, seen := t.pending[ev.Key]; !seen {
		t.order = append(t.order, ev.Key)
	}
	// Last writer wins: a write followed by an erase is an erase.
	t.pending[ev.Key] = ev.Type

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	pending := t.pending
	order := t.order
	t.pending = make(map[string]EventType)
	t.order = nil
	t.timer = nil
	// Added under mu so Stop cannot miss it.
	t.inflight.Add(1)
	t.mu.Unlock()
	defer t.inflight.Done()

	for _, key := range order {
		send(Event{Type: pending[key], Key: key})
	}
}

// Stop cancels the pending flush and waits for one already sending.
func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
	t.inflight.Wait()
}
