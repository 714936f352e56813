package windowtest

import (
	"fmt"

	"github.com/creastat/windowtest/core"
)

// Query selects one window and one extraction mode with a fluent API.
// Selection is static per Apply call; a built query can be reused.
type Query[T any] struct {
	window    core.Interval
	hasWindow bool
	mode      Mode
}

// NewQuery creates an empty query
func NewQuery[T any]() *Query[T] {
	return &Query[T]{}
}

// InWindow selects the window whose pane sequence the query reduces
func (q *Query[T]) InWindow(w core.Interval) *Query[T] {
	q.window = w
	q.hasWindow = true
	return q
}

// InMode selects the extraction mode by tag
func (q *Query[T]) InMode(mode Mode) *Query[T] {
	q.mode = mode
	return q
}

// InOnlyPane expects the window to have fired exactly once
func (q *Query[T]) InOnlyPane() *Query[T] {
	return q.InMode(ModeOnlyPane)
}

// InOnTimePane keeps only the on-time firing
func (q *Query[T]) InOnTimePane() *Query[T] {
	return q.InMode(ModeOnTimePane)
}

// InFinalPane keeps only the window's final firing
func (q *Query[T]) InFinalPane() *Query[T] {
	return q.InMode(ModeFinalPane)
}

// InNonLatePanes keeps early and on-time firings
func (q *Query[T]) InNonLatePanes() *Query[T] {
	return q.InMode(ModeNonLatePanes)
}

// InAllPanes keeps every firing
func (q *Query[T]) InAllPanes() *Query[T] {
	return q.InMode(ModeAllPanes)
}

// Apply validates the query and reduces the capture's records for the
// selected window. Configuration problems are reported before extraction
// runs; a PaneShapeError from the extractor propagates unchanged.
func (q *Query[T]) Apply(c *Capture[T]) ([]T, error) {
	if !q.hasWindow {
		return nil, fmt.Errorf("query must select a window")
	}
	if q.mode == "" {
		return nil, fmt.Errorf("query must select an extraction mode")
	}

	extractor, err := ForMode[T](q.mode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve extraction mode: %w", err)
	}

	if !c.Seen(q.window) {
		return nil, fmt.Errorf("window %s was never captured", q.window)
	}

	return extractor(c.Records(q.window))
}
