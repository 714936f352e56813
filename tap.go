package windowtest

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/creastat/infra/telemetry"
	"github.com/creastat/windowtest/core"
	"github.com/creastat/windowtest/protocol"
	"github.com/gorilla/websocket"
)

// MessageReader reads raw frames from an emission stream.
// *websocket.Conn satisfies it.
type MessageReader interface {
	ReadMessage() (messageType int, p []byte, err error)
}

// TapConfig holds configuration for Tap
type TapConfig struct {
	Reader MessageReader
	Logger telemetry.Logger
}

// Tap decodes a pipeline's websocket emission stream into captured emissions
type Tap struct {
	config TapConfig
}

// NewTap creates a new emission-stream tap
func NewTap(config TapConfig) *Tap {
	return &Tap{
		config: config,
	}
}

// frame is one raw result of MessageReader.ReadMessage
type frame struct {
	messageType int
	data        []byte
	err         error
}

// Process reads emission messages and sends them to output until the stream
// ends or the context is cancelled. The output channel is closed on return.
// Unknown message types are skipped; a normal websocket closure or a
// stream.end frame terminates the tap without error. Reads run in their own
// goroutine so cancellation interrupts the tap even while the connection is
// silent.
func (t *Tap) Process(ctx context.Context, output chan<- core.Emission[json.RawMessage]) error {
	defer close(output)

	logger := t.config.Logger.WithModule("tap")
	logger.Info("starting emission stream tap")

	frames := make(chan frame)
	go func() {
		defer close(frames)
		for {
			messageType, data, err := t.config.Reader.ReadMessage()
			select {
			case <-ctx.Done():
				return
			case frames <- frame{messageType: messageType, data: data, err: err}:
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		var f frame
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f, ok = <-frames:
			if !ok {
				// The reader goroutine only closes frames after delivering
				// its final error or observing cancellation.
				return ctx.Err()
			}
		}

		if f.err != nil {
			if errors.Is(f.err, io.EOF) || websocket.IsCloseError(f.err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Info("emission stream closed")
				return nil
			}
			logger.Error("failed to read emission stream", telemetry.Err(f.err))
			return f.err
		}

		if f.messageType != websocket.TextMessage {
			logger.Debug("skipping non-text frame", telemetry.Int("message_type", f.messageType))
			continue
		}

		var msg protocol.Message
		if err := json.Unmarshal(f.data, &msg); err != nil {
			logger.Error("failed to unmarshal emission message", telemetry.Err(err))
			continue
		}

		switch msg.Type {
		case protocol.MessageStreamEnd:
			logger.Info("emission stream ended")
			return nil

		case protocol.MessageEmission:
			emission, err := protocol.MessageToEmission(&msg)
			if err != nil {
				logger.Error("failed to decode emission", telemetry.Err(err))
				continue
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case output <- emission:
			}
			logger.Debug("tapped emission",
				telemetry.String("window", emission.Window.String()),
				telemetry.Bool("is_last", emission.Record.Pane.IsLast),
			)

		default:
			logger.Debug("skipping unknown message type", telemetry.String("type", string(msg.Type)))
		}
	}
}
