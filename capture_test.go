package windowtest

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/creastat/infra/telemetry"
	"github.com/creastat/windowtest/core"
)

func testWindow(minute int) core.Interval {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return core.NewInterval(
		base.Add(time.Duration(minute)*time.Minute),
		base.Add(time.Duration(minute+1)*time.Minute),
	)
}

func TestCaptureRun_GroupsPerWindow(t *testing.T) {
	capture := NewCapture[int](CaptureConfig{
		Logger: telemetry.New(telemetry.Config{Level: "error"}),
	})

	w1 := testWindow(0)
	w2 := testWindow(1)

	input := make(chan core.Emission[int], 10)
	input <- core.Emission[int]{Window: w1, Record: core.Record[int]{Value: 1, Pane: core.FirstPane(core.TimingEarly)}}
	input <- core.Emission[int]{Window: w2, Record: core.Record[int]{Value: 9, Pane: core.OnTimeAndOnlyFiring()}}
	input <- core.Emission[int]{Window: w1, Record: core.Record[int]{Value: 2, Pane: core.LastPane(core.TimingOnTime, 1, 0)}}
	close(input)

	if err := capture.Run(context.Background(), input); err != nil {
		t.Fatalf("capture run failed: %v", err)
	}

	windows := capture.Windows()
	if !reflect.DeepEqual(windows, []core.Interval{w1, w2}) {
		t.Errorf("windows not in first-seen order: %v", windows)
	}

	records := capture.Records(w1)
	if len(records) != 2 || records[0].Value != 1 || records[1].Value != 2 {
		t.Errorf("w1 records not grouped in arrival order: %v", records)
	}

	if capture.Len() != 2 {
		t.Errorf("got %d windows, want 2", capture.Len())
	}
	if !capture.Seen(w2) {
		t.Error("w2 must be seen")
	}
	if capture.Seen(testWindow(5)) {
		t.Error("uncaptured window must not be seen")
	}
}

func TestCaptureRun_ContextCancelled(t *testing.T) {
	capture := NewCapture[int](CaptureConfig{
		Logger: telemetry.New(telemetry.Config{Level: "error"}),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := make(chan core.Emission[int])
	err := capture.Run(ctx, input)
	if err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestCaptureRecords_ReturnsCopy(t *testing.T) {
	capture := NewCapture[int](CaptureConfig{
		Logger: telemetry.New(telemetry.Config{Level: "error"}),
	})

	w := testWindow(0)
	capture.Add(core.Emission[int]{Window: w, Record: core.Record[int]{Value: 7, Pane: core.OnTimeAndOnlyFiring()}})

	records := capture.Records(w)
	records[0].Value = 99

	again := capture.Records(w)
	if again[0].Value != 7 {
		t.Errorf("captured state mutated through the returned slice: %v", again)
	}
}

func TestCaptureExtract(t *testing.T) {
	capture := NewCapture[int](CaptureConfig{
		Logger: telemetry.New(telemetry.Config{Level: "error"}),
	})

	w := testWindow(0)
	capture.Add(core.Emission[int]{Window: w, Record: core.Record[int]{Value: 1, Pane: core.FirstPane(core.TimingEarly)}})
	capture.Add(core.Emission[int]{Window: w, Record: core.Record[int]{Value: 2, Pane: core.PaneInfo{Timing: core.TimingOnTime, Index: 1, NonSpeculativeIndex: 0}}})
	capture.Add(core.Emission[int]{Window: w, Record: core.Record[int]{Value: 3, Pane: core.LastPane(core.TimingLate, 2, 1)}})

	got, err := capture.Extract(w, ModeNonLatePanes)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}

	if _, err := capture.Extract(w, "bogus"); err == nil {
		t.Error("unknown mode must fail")
	}

	empty, err := capture.Extract(testWindow(5), ModeAllPanes)
	if err != nil {
		t.Fatalf("uncaptured window must extract to empty, got error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %v, want empty", empty)
	}
}
