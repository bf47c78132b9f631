package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dmarkovic/jobster/internal/domain"
)

// Event types - Client → Server
const (
	EventTypeRoomSubscribe   = "room.subscribe"
	EventTypeRoomUnsubscribe = "room.unsubscribe"
	EventTypeTypingStart     = "typing.start"
	EventTypeTypingStop      = "typing.stop"
	EventTypePing            = "ping"
)

// Event types - Server → Client
const (
	EventTypeMessageNew = "message.new"
	EventTypeTyping     = "typing"
	EventTypePong       = "pong"
	EventTypeError      = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	RoomID    *uuid.UUID      `json:"room_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

type RoomPayload struct {
	RoomID uuid.UUID `json:"room_id"`
}

// --- Server → Client payloads ---

type MessagePayload struct {
	domain.Message
}

type TypingPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, roomID *uuid.UUID, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		RoomID:    roomID,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
