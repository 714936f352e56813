package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/creastat/windowtest/core"
)

// MessageToEmission converts an emission-stream message to a core emission.
// The pane timing is validated; everything else is taken as stamped by the
// pipeline.
func MessageToEmission(msg *Message) (core.Emission[json.RawMessage], error) {
	if msg.Type != MessageEmission {
		return core.Emission[json.RawMessage]{}, fmt.Errorf("expected %q message, got %q", MessageEmission, msg.Type)
	}

	timing := core.Timing(msg.Pane.Timing)
	if !timing.Valid() {
		return core.Emission[json.RawMessage]{}, fmt.Errorf("unknown pane timing %q", msg.Pane.Timing)
	}

	return core.Emission[json.RawMessage]{
		Window: core.NewInterval(
			time.UnixMilli(msg.WindowStart),
			time.UnixMilli(msg.WindowEnd),
		),
		Record: core.Record[json.RawMessage]{
			Value: msg.Value,
			Pane: core.PaneInfo{
				IsFirst:             msg.Pane.IsFirst,
				IsLast:              msg.Pane.IsLast,
				Timing:              timing,
				Index:               msg.Pane.Index,
				NonSpeculativeIndex: msg.Pane.NonSpeculativeIndex,
			},
		},
	}, nil
}

// EmissionToMessage converts a core emission to an emission-stream message
func EmissionToMessage(e core.Emission[json.RawMessage]) *Message {
	return &Message{
		Type:        MessageEmission,
		WindowStart: e.Window.Start.UnixMilli(),
		WindowEnd:   e.Window.End.UnixMilli(),
		Pane: PanePayload{
			IsFirst:             e.Record.Pane.IsFirst,
			IsLast:              e.Record.Pane.IsLast,
			Timing:              string(e.Record.Pane.Timing),
			Index:               e.Record.Pane.Index,
			NonSpeculativeIndex: e.Record.Pane.NonSpeculativeIndex,
		},
		Value:     e.Record.Value,
		Timestamp: time.Now().UnixMilli(),
	}
}

// StreamEndMessage returns the frame that terminates an emission stream
func StreamEndMessage() *Message {
	return &Message{
		Type:      MessageStreamEnd,
		Timestamp: time.Now().UnixMilli(),
	}
}
