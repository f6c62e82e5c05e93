package ws

import (
	"encoding/json"
)

// MessageType tags every frame exchanged over a game socket.
type MessageType string

const (
	// client -> server
	MessageTypeMove  MessageType = "move"
	MessageTypeHints MessageType = "hints"

	// server -> client
	MessageTypeGameState MessageType = "gameState"
	MessageTypeHintList  MessageType = "hintList"
	MessageTypeError     MessageType = "error"
)

// Message is the envelope of every frame; Payload is decoded by Type.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage marshals payload into an envelope of the given type.
func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

// HintsRequest asks for the legal destinations of the piece on Square.
type HintsRequest struct {
	Square Square `json:"square"`
}

// Square mirrors the board square wire shape without importing the model.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type HintList struct {
	Square   Square   `json:"square"`
	Moves    []Square `json:"moves"`
	Captures []Square `json:"captures"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
