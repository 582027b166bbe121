package entity

import (
	"time"

	"github.com/hotseatgames/tictactoe-backend/internal/engine"
)

// Session ties one game to one UI client. The game itself never outlives
// its session: finished games are dropped, nothing is scored across rounds.
type Session struct {
	ID        string       `json:"id"`
	Game      *engine.Game `json:"game"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Game:      engine.NewGame(),
		CreatedAt: time.Now().UTC(),
	}
}
