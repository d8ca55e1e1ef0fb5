// Package logging provides a custom slog handler that keeps recent
// WARN and ERROR records in a bounded in-memory ring so the admin
// console can inspect them without log file access.
package logging

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultRingSize is how many events the ring retains by default.
const DefaultRingSize = 256

// Event is one retained log record.
type Event struct {
	Time    time.Time         `json:"time"`
	Level   string            `json:"level"`
	Message string            `json:"message"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// RingHandler is a slog.Handler that wraps another handler and also
// retains WARN and ERROR level records in a fixed-size ring buffer.
type RingHandler struct {
	inner slog.Handler
	level slog.Level // minimum level to retain (default: WARN)

	mu     sync.Mutex
	ring   []Event
	next   int
	filled bool
}

// NewRingHandler creates a RingHandler that wraps the given handler
// and retains WARN+ records. size <= 0 uses DefaultRingSize.
func NewRingHandler(inner slog.Handler, size int) *RingHandler {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingHandler{
		inner: inner,
		level: slog.LevelWarn,
		ring:  make([]Event, size),
	}
}

// Enabled implements slog.Handler.
func (h *RingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RingHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always forward to the inner handler first
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.retain(r)
	}
	return nil
}

// WithAttrs implements slog.Handler. Derived handlers share the ring.
func (h *RingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &derivedHandler{inner: h.inner.WithAttrs(attrs), ring: h}
}

// WithGroup implements slog.Handler. Derived handlers share the ring.
func (h *RingHandler) WithGroup(name string) slog.Handler {
	return &derivedHandler{inner: h.inner.WithGroup(name), ring: h}
}

// retain copies the record into the ring.
func (h *RingHandler) retain(r slog.Record) {
	attrs := make(map[string]string)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})
	if len(attrs) == 0 {
		attrs = nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.ring[h.next] = Event{
		Time:    r.Time,
		Level:   r.Level.String(),
		Message: r.Message,
		Attrs:   attrs,
	}
	h.next++
	if h.next == len(h.ring) {
		h.next = 0
		h.filled = true
	}
}

// Events returns the retained events, oldest first.
func (h *RingHandler) Events() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.filled {
		out := make([]Event, h.next)
		copy(out, h.ring[:h.next])
		return out
	}

	out := make([]Event, 0, len(h.ring))
	out = append(out, h.ring[h.next:]...)
	out = append(out, h.ring[:h.next]...)
	return out
}

// derivedHandler forwards to a transformed inner handler while still
// retaining WARN+ records in the parent's ring.
type derivedHandler struct {
	inner slog.Handler
	ring  *RingHandler
}

func (d *derivedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return d.inner.Enabled(ctx, level)
}

func (d *derivedHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := d.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= d.ring.level {
		d.ring.retain(r)
	}
	return nil
}

func (d *derivedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &derivedHandler{inner: d.inner.WithAttrs(attrs), ring: d.ring}
}

func (d *derivedHandler) WithGroup(name string) slog.Handler {
	return &derivedHandler{inner: d.inner.WithGroup(name), ring: d.ring}
}
