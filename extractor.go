package windowtest

import (
	"fmt"

	"github.com/creastat/windowtest/core"
)

// Mode identifies one of the pane extraction strategies
type Mode string

const (
	// ModeOnlyPane extracts the single firing of a window and fails on any other shape
	ModeOnlyPane Mode = "only-pane"

	// ModeOnTimePane extracts values from the on-time firing only
	ModeOnTimePane Mode = "on-time-pane"

	// ModeFinalPane extracts values from the last firing only
	ModeFinalPane Mode = "final-pane"

	// ModeNonLatePanes extracts values from early and on-time firings
	ModeNonLatePanes Mode = "non-late-panes"

	// ModeAllPanes extracts every value regardless of pane
	ModeAllPanes Mode = "all-panes"
)

// Extractor reduces an ordered sequence of pane-annotated records to the plain
// values one assertion mode cares about. Output order follows input order; the
// returned slice is freshly allocated and owned by the caller.
type Extractor[T any] func(records []core.Record[T]) ([]T, error)

// ForMode returns the extractor for a mode tag
func ForMode[T any](mode Mode) (Extractor[T], error) {
	switch mode {
	case ModeOnlyPane:
		return OnlyPane[T](), nil
	case ModeOnTimePane:
		return OnTimePane[T](), nil
	case ModeFinalPane:
		return FinalPane[T](), nil
	case ModeNonLatePanes:
		return NonLatePanes[T](), nil
	case ModeAllPanes:
		return AllPanes[T](), nil
	}
	return nil, fmt.Errorf("unknown extraction mode %q", mode)
}

// OnlyPane expects its input to hold exactly the single firing of the window.
// A record that is not both the first and the last pane is a trigger-logic
// defect, not a filterable case: extraction fails with a PaneShapeError
// instead of dropping the record. The check runs on every record, since any
// one record can break the single-firing shape.
func OnlyPane[T any]() Extractor[T] {
	return func(records []core.Record[T]) ([]T, error) {
		outputs := make([]T, 0, len(records))
		for _, record := range records {
			if !record.Pane.IsFirst {
				return nil, PaneShapeError{Reason: ReasonNotFirstPane, Pane: record.Pane}
			}
			if !record.Pane.IsLast {
				return nil, PaneShapeError{Reason: ReasonNotLastPane, Pane: record.Pane}
			}
			outputs = append(outputs, record.Value)
		}
		return outputs, nil
	}
}

// OnTimePane keeps the values fired when the watermark passed the window end.
// Early and late panes are silently excluded.
func OnTimePane[T any]() Extractor[T] {
	return func(records []core.Record[T]) ([]T, error) {
		return selectPanes(records, func(pane core.PaneInfo) bool {
			return pane.Timing == core.TimingOnTime
		}), nil
	}
}

// FinalPane keeps the values of the last pane that fired for the window.
// Earlier panes are silently excluded.
func FinalPane[T any]() Extractor[T] {
	return func(records []core.Record[T]) ([]T, error) {
		return selectPanes(records, func(pane core.PaneInfo) bool {
			return pane.IsLast
		}), nil
	}
}

// NonLatePanes keeps early and on-time values, excluding panes fired by late
// data. Early firings are kept on purpose: the result is the predictions plus
// the definitive on-time outcome.
func NonLatePanes[T any]() Extractor[T] {
	return func(records []core.Record[T]) ([]T, error) {
		return selectPanes(records, func(pane core.PaneInfo) bool {
			return pane.Timing != core.TimingLate
		}), nil
	}
}

// AllPanes keeps every value, ignoring pane metadata entirely
func AllPanes[T any]() Extractor[T] {
	return func(records []core.Record[T]) ([]T, error) {
		return selectPanes(records, func(core.PaneInfo) bool {
			return true
		}), nil
	}
}

// selectPanes is the single-pass filter shared by the total strategies
func selectPanes[T any](records []core.Record[T], keep func(core.PaneInfo) bool) []T {
	outputs := make([]T, 0, len(records))
	for _, record := range records {
		if keep(record.Pane) {
			outputs = append(outputs, record.Value)
		}
	}
	return outputs
}
