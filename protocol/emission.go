package protocol

import "encoding/json"

// MessageType defines emission-stream message types
type MessageType string

const (
	// MessageEmission carries one windowed value with its pane metadata
	MessageEmission MessageType = "window.emission"

	// MessageStreamEnd signals that no more emissions will follow
	MessageStreamEnd MessageType = "stream.end"
)

// Message represents one frame of a pipeline's emission stream
type Message struct {
	Type        MessageType     `json:"type"`
	WindowStart int64           `json:"windowStart"` // Window start, Unix millis
	WindowEnd   int64           `json:"windowEnd"`   // Window end, Unix millis
	Pane        PanePayload     `json:"pane"`
	Value       json.RawMessage `json:"value,omitempty"`
	Timestamp   int64           `json:"timestamp"`
}

// PanePayload carries the pane metadata of a single emission
type PanePayload struct {
	IsFirst             bool   `json:"isFirst"`
	IsLast              bool   `json:"isLast"`
	Timing              string `json:"timing"`
	Index               int64  `json:"index"`
	NonSpeculativeIndex int64  `json:"nonSpeculativeIndex"`
}
