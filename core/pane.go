package core

import "fmt"

// Timing classifies when a pane fired relative to the owning window's
// event-time watermark
type Timing string

const (
	// TimingEarly marks a speculative firing before the watermark passed the window end
	TimingEarly Timing = "EARLY"

	// TimingOnTime marks the firing produced when the watermark passed the window end
	TimingOnTime Timing = "ON_TIME"

	// TimingLate marks a firing caused by data arriving after the watermark passed
	TimingLate Timing = "LATE"
)

// Valid reports whether t is one of the three defined timings
func (t Timing) Valid() bool {
	switch t {
	case TimingEarly, TimingOnTime, TimingLate:
		return true
	}
	return false
}

// PaneInfo describes one firing of a window's trigger. It is attached to every
// value the window emits and is immutable once attached.
type PaneInfo struct {
	// IsFirst is true if this is the first pane ever fired for the window
	IsFirst bool

	// IsLast is true if no more panes will fire for the window
	IsLast bool

	// Timing classifies the firing relative to the watermark
	Timing Timing

	// Index counts every firing of the window, starting at zero
	Index int64

	// NonSpeculativeIndex counts non-early firings, starting at zero.
	// It is -1 while every firing so far has been speculative.
	NonSpeculativeIndex int64
}

// OnTimeAndOnlyFiring returns the pane of a window that fires exactly once, on time
func OnTimeAndOnlyFiring() PaneInfo {
	return PaneInfo{
		IsFirst:             true,
		IsLast:              true,
		Timing:              TimingOnTime,
		Index:               0,
		NonSpeculativeIndex: 0,
	}
}

// FirstPane returns the first of several firings with the given timing
func FirstPane(timing Timing) PaneInfo {
	nonSpeculative := int64(0)
	if timing == TimingEarly {
		nonSpeculative = -1
	}
	return PaneInfo{
		IsFirst:             true,
		Timing:              timing,
		Index:               0,
		NonSpeculativeIndex: nonSpeculative,
	}
}

// LastPane returns the final of several firings with the given timing and indexes
func LastPane(timing Timing, index, nonSpeculativeIndex int64) PaneInfo {
	return PaneInfo{
		IsLast:              true,
		Timing:              timing,
		Index:               index,
		NonSpeculativeIndex: nonSpeculativeIndex,
	}
}

// String renders the full pane metadata for diagnostics
func (p PaneInfo) String() string {
	return fmt.Sprintf("PaneInfo{isFirst=%t, isLast=%t, timing=%s, index=%d, nonSpeculativeIndex=%d}",
		p.IsFirst, p.IsLast, p.Timing, p.Index, p.NonSpeculativeIndex)
}
