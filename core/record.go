package core

import (
	"fmt"
	"time"
)

// Record pairs one emitted value with the pane metadata of the firing that
// produced it. Extractors consume records read-only.
type Record[T any] struct {
	Value T
	Pane  PaneInfo
}

// Interval is a half-open [Start, End) event-time window. This library never
// assigns elements to windows; intervals arrive already stamped by the
// pipeline under test.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates an interval from its bounds
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// Key returns a stable identifier for the interval at millisecond resolution
func (i Interval) Key() string {
	return fmt.Sprintf("%d/%d", i.Start.UnixMilli(), i.End.UnixMilli())
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339Nano), i.End.Format(time.RFC3339Nano))
}

// Emission is one captured pipeline output: a pane-annotated record stamped
// with its owning window
type Emission[T any] struct {
	Window Interval
	Record Record[T]
}
