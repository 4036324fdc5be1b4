package gateway

import (
	"encoding/json"
	"time"
)

// EventType represents the type of a message pushed to clients or the stream
type EventType string

const (
	EventTypeMatchState        EventType = "MatchState"
	EventTypeMatchStateChanged EventType = "MatchStateChanged"
	EventTypeError             EventType = "Error"
)

// ClientMessageType is the type of a message a client may send.
type ClientMessageType string

const (
	ClientMessageGetState ClientMessageType = "GetState"
	ClientMessagePing     ClientMessageType = "Ping"
)

// Message is the frame sent over a WebSocket connection
type Message struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// ClientMessage is a frame received from a WebSocket client
type ClientMessage struct {
	Type ClientMessageType `json:"type"`
}

// StreamEvent is the envelope published to JetStream
type StreamEvent struct {
	EventID   string          `json:"eventId"`
	EventType EventType       `json:"eventType"`
	MatchID   string          `json:"matchId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// ErrorPayload describes why a request could not be served
type ErrorPayload struct {
	Error string `json:"error"`
}
