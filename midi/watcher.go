package midi

import (
	"context"
	"time"
)

// PortEvent is emitted when the watched port connects/disconnects
type PortEvent struct {
	Type PortEventType
	Name string
}

type PortEventType int

const (
	PortConnected PortEventType = iota
	PortDisconnected
)

// PortWatcher handles hot-plug detection of one output port
type PortWatcher struct {
	name     string
	list     func() []string
	events   chan PortEvent
	pollRate time.Duration
	timeout  time.Duration
	present  bool
}

// NewPortWatcher watches for an output port called name
func NewPortWatcher(name string) *PortWatcher {
	return &PortWatcher{
		name:     name,
		list:     outPortNames,
		events:   make(chan PortEvent, 16),
		pollRate: time.Second,
		timeout:  3 * time.Second,
	}
}

// WithLister replaces the port lister (tests, or drivers without hot-plug)
func (w *PortWatcher) WithLister(list func() []string, pollRate time.Duration) *PortWatcher {
	w.list = list
	w.pollRate = pollRate
	return w
}

// Events returns a channel of connect/disconnect events
func (w *PortWatcher) Events() <-chan PortEvent {
	return w.events
}

// Run starts the polling loop (blocking - run in goroutine)
func (w *PortWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollRate)
	defer ticker.Stop()
	defer close(w.events)

	// Initial scan
	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *PortWatcher) scan(ctx context.Context) {
	ch := make(chan []string, 1)
	go func() {
		ch <- w.list()
	}()

	var names []string
	select {
	case names = <-ch:
	case <-time.After(w.timeout):
		// CoreMIDI is hung - skip this scan
		// User needs to run: sudo killall coreaudiod midiserver
		return
	case <-ctx.Done():
		return
	}

	seen := false
	for _, n := range names {
		if n == w.name {
			seen = true
			break
		}
	}
	if seen == w.present {
		return
	}
	w.present = seen

	ev := PortEvent{Type: PortDisconnected, Name: w.name}
	if seen {
		ev.Type = PortConnected
	}
	select {
	case w.events <- ev:
	case <-ctx.Done():
	}
}
