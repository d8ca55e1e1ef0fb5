package logging

import (
	"io"
	"log/slog"
	"testing"
)

func newTestLogger(size int) (*slog.Logger, *RingHandler) {
	h := NewRingHandler(slog.NewTextHandler(io.Discard, nil), size)
	return slog.New(h), h
}

func TestRingHandler_RetainsWarnAndAbove(t *testing.T) {
	logger, h := newTestLogger(8)

	logger.Info("routine startup")
	logger.Warn("store unreachable", "backend", "redis")
	logger.Error("write failed", "key", "artworks")

	events := h.Events()
	if len(events) != 2 {
		t.Fatalf("retained %d events, want 2", len(events))
	}
	if events[0].Level != "WARN" || events[0].Message != "store unreachable" {
		t.Errorf("first event = %+v", events[0])
	}
	if events[0].Attrs["backend"] != "redis" {
		t.Errorf("attrs = %v", events[0].Attrs)
	}
	if events[1].Level != "ERROR" {
		t.Errorf("second event = %+v", events[1])
	}
}

func TestRingHandler_WrapsAround(t *testing.T) {
	logger, h := newTestLogger(3)

	logger.Warn("one")
	logger.Warn("two")
	logger.Warn("three")
	logger.Warn("four")

	events := h.Events()
	if len(events) != 3 {
		t.Fatalf("retained %d events, want 3", len(events))
	}
	// Oldest first, "one" evicted.
	if events[0].Message != "two" || events[2].Message != "four" {
		t.Errorf("ring order: %+v", events)
	}
}

func TestRingHandler_DerivedHandlersShareRing(t *testing.T) {
	logger, h := newTestLogger(8)

	logger.With("component", "catalog").Warn("slow read")
	logger.WithGroup("store").Warn("retrying")

	if got := len(h.Events()); got != 2 {
		t.Errorf("retained %d events, want 2", got)
	}
}

func TestRingHandler_Empty(t *testing.T) {
	_, h := newTestLogger(4)
	if got := h.Events(); len(got) != 0 {
		t.Errorf("events = %v", got)
	}
}
