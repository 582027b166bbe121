package websocket

import (
	"encoding/json"

	"github.com/hotseatgames/tictactoe-backend/internal/engine"
	"github.com/hotseatgames/tictactoe-backend/internal/presenter"
)

// Message is the envelope for everything crossing the socket, both ways.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type JoinPayload struct {
	SessionID string `json:"session_id"`
}

type TurnPayload struct {
	Cell int `json:"cell"`
}

type ResponsePayload struct {
	SessionID string             `json:"session_id,omitempty"`
	View      *presenter.View    `json:"view,omitempty"`
	Move      *engine.MoveResult `json:"move,omitempty"`
	Error     string             `json:"error,omitempty"`
}
