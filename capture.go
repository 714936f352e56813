package windowtest

import (
	"context"
	"sync"

	"github.com/creastat/infra/telemetry"
	"github.com/creastat/windowtest/core"
)

// CaptureConfig holds configuration for Capture
type CaptureConfig struct {
	Logger telemetry.Logger
}

// Capture collects a pipeline's emissions and groups them per window so an
// extraction strategy can reduce one window's pane sequence at a time. It is
// safe to inspect a capture while Run is still consuming.
type Capture[T any] struct {
	config CaptureConfig

	mu      sync.Mutex
	records map[string][]core.Record[T]
	order   []core.Interval
}

// NewCapture creates an empty capture
func NewCapture[T any](config CaptureConfig) *Capture[T] {
	return &Capture[T]{
		config:  config,
		records: make(map[string][]core.Record[T]),
	}
}

// Run consumes emissions until the input channel closes or the context is
// cancelled. Records are grouped per window in arrival order.
func (c *Capture[T]) Run(ctx context.Context, input <-chan core.Emission[T]) error {
	logger := c.config.Logger.WithModule("capture")
	logger.Debug("capture started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case emission, ok := <-input:
			if !ok {
				logger.Debug("capture input channel closed", telemetry.Int("windows", c.Len()))
				return nil
			}

			c.Add(emission)
			logger.Debug("captured emission",
				telemetry.String("window", emission.Window.String()),
				telemetry.String("pane", emission.Record.Pane.String()),
			)
		}
	}
}

// Add records a single emission under its window
func (c *Capture[T]) Add(e core.Emission[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := e.Window.Key()
	if _, seen := c.records[key]; !seen {
		c.order = append(c.order, e.Window)
	}
	c.records[key] = append(c.records[key], e.Record)
}

// Len returns the number of distinct windows captured so far
func (c *Capture[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Seen reports whether any emission has been captured for the window
func (c *Capture[T]) Seen(w core.Interval) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, seen := c.records[w.Key()]
	return seen
}

// Windows returns the captured windows in first-seen order
func (c *Capture[T]) Windows() []core.Interval {
	c.mu.Lock()
	defer c.mu.Unlock()

	windows := make([]core.Interval, len(c.order))
	copy(windows, c.order)
	return windows
}

// Records returns a copy of the records captured for the window, in arrival order
func (c *Capture[T]) Records(w core.Interval) []core.Record[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := make([]core.Record[T], len(c.records[w.Key()]))
	copy(records, c.records[w.Key()])
	return records
}

// Extract reduces the records captured for the window with the named
// extraction mode. A window with no captured emissions reduces to an empty
// sequence, matching the extractors' empty-input behavior; Query.Apply is the
// stricter surface that rejects windows never seen.
func (c *Capture[T]) Extract(w core.Interval, mode Mode) ([]T, error) {
	extractor, err := ForMode[T](mode)
	if err != nil {
		return nil, err
	}
	return extractor(c.Records(w))
}
