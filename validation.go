package windowtest

import (
	"fmt"

	"github.com/creastat/windowtest/core"
)

// ShapeReason identifies which pane invariant an offending record broke
type ShapeReason string

const (
	// ReasonNotFirstPane reports a record from a pane that is not the window's first firing
	ReasonNotFirstPane ShapeReason = "not the first pane"

	// ReasonNotLastPane reports a record from a pane that is not the window's final firing
	ReasonNotLastPane ShapeReason = "not the last pane"
)

// PaneShapeError reports a record whose pane metadata is incompatible with the
// pane-sequence shape an extraction mode requires. It carries the full
// metadata of the offending record to aid debugging of trigger-logic defects.
type PaneShapeError struct {
	Reason ShapeReason
	Pane   core.PaneInfo
}

func (e PaneShapeError) Error() string {
	return fmt.Sprintf(
		"expected elements produced by a trigger that fires at most once, but got a value in a pane that is %s; actual pane info: %s",
		e.Reason, e.Pane,
	)
}
