package presenter

import (
	"testing"

	"github.com/hotseatgames/tictactoe-backend/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("waiting game asks the player to press start", func(t *testing.T) {
		// Given: a game that has not been started
		game := engine.NewGame()

		// When: the view is rendered
		view := Render(game)

		// Then: the status invites a start and every cell is locked
		assert.Equal(t, "Press Start to begin", view.Status)
		assert.Equal(t, engine.PhaseWaiting, view.Phase)
		assert.Empty(t, view.Turn)
		for i, cell := range view.Cells {
			assert.False(t, cell.Enabled, "cell %d", i)
		}
	})

	t.Run("ongoing game shows whose turn it is", func(t *testing.T) {
		// Given: a started game where X already moved at 4
		game := engine.NewGame()
		game.Start()
		game.Move(4)

		// When: the view is rendered
		view := Render(game)

		// Then: it is O's turn and only empty cells are enabled
		assert.Equal(t, "Player O's turn", view.Status)
		assert.Equal(t, engine.PlayerO, view.Turn)
		assert.Equal(t, engine.PlayerX, view.Cells[4].Mark)
		assert.False(t, view.Cells[4].Enabled)
		assert.True(t, view.Cells[0].Enabled)
	})

	t.Run("won game announces the winner and locks the board", func(t *testing.T) {
		// Given: a game X has won
		game := engine.NewGame()
		game.Start()
		for _, cell := range []int{0, 3, 1, 4, 2} {
			game.Move(cell)
		}
		require.Equal(t, engine.PhaseFinished, game.Phase)

		// When: the view is rendered
		view := Render(game)

		// Then: the win is announced and no cell is tappable
		assert.Equal(t, "Player X wins!", view.Status)
		assert.Equal(t, engine.PlayerX, view.Winner)
		assert.Empty(t, view.Turn)
		for i, cell := range view.Cells {
			assert.False(t, cell.Enabled, "cell %d", i)
		}
	})

	t.Run("draw is announced", func(t *testing.T) {
		// Given: a drawn game
		game := engine.NewGame()
		game.Start()
		for _, cell := range []int{0, 1, 2, 3, 4, 8, 5, 6, 7} {
			game.Move(cell)
		}
		require.Equal(t, engine.PlayerTie, game.Winner)

		// When: the view is rendered
		view := Render(game)

		// Then: the status says draw
		assert.Equal(t, "Draw!", view.Status)
	})

	t.Run("rendering does not change the game", func(t *testing.T) {
		// Given: a mid-game state
		game := engine.NewGame()
		game.Start()
		game.Move(0)
		before := *game

		// When: rendered twice
		Render(game)
		Render(game)

		// Then: the game is untouched
		assert.Equal(t, before, *game)
	})
}
