package presenter

import (
	"github.com/hotseatgames/tictactoe-backend/internal/engine"
)

const (
	statusPressStart = "Press Start to begin"
	statusDraw       = "Draw!"
)

// CellView is one board cell as the UI should draw it. Enabled means the
// cell may be tapped: only empty cells, and only while the game runs.
type CellView struct {
	Mark    string `json:"mark"`
	Enabled bool   `json:"enabled"`
}

// View is everything a presentation layer needs to draw one game: the
// status line, the cells with their tap state, and the raw phase/turn for
// clients that render their own copy.
type View struct {
	Status      string      `json:"status"`
	Cells       [9]CellView `json:"cells"`
	Phase       string      `json:"phase"`
	Turn        string      `json:"turn,omitempty"`
	Winner      string      `json:"winner,omitempty"`
	LastOutcome string      `json:"last_outcome,omitempty"`
}

// Render maps game state to a view. It is pure: calling it never changes
// the game, so transports can render the same state as often as they like.
func Render(game *engine.Game) View {
	view := View{
		Status:      statusLine(game),
		Phase:       game.Phase,
		Winner:      game.Winner,
		LastOutcome: game.LastOutcome,
	}

	if game.IsOngoing() {
		view.Turn = game.Turn
	}

	for i, mark := range game.Board {
		view.Cells[i] = CellView{
			Mark:    mark,
			Enabled: mark == engine.EmptyCell && game.IsOngoing(),
		}
	}

	return view
}

func statusLine(game *engine.Game) string {
	switch game.Phase {
	case engine.PhaseOngoing:
		return "Player " + game.Turn + "'s turn"
	case engine.PhaseFinished:
		if game.Winner == engine.PlayerTie {
			return statusDraw
		}
		return "Player " + game.Winner + " wins!"
	default:
		return statusPressStart
	}
}
