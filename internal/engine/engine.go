package engine

const (
	PhaseWaiting  = "waiting"
	PhaseOngoing  = "ongoing"
	PhaseFinished = "finished"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

const (
	OutcomeRejected = "rejected"
	OutcomeContinue = "continue"
	OutcomeWin      = "win"
	OutcomeDraw     = "draw"
)

// WinCombos are the 8 winning lines: three rows, three columns, two
// diagonals. They are checked in this order and the first match wins.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// MoveResult tells the caller what a move did so the presentation layer
// can render the right message and lock the board.
type MoveResult struct {
	Outcome string `json:"outcome"`
	Winner  string `json:"winner,omitempty"`
	Cell    int    `json:"cell"`
}

// Game is the single source of truth for one board. It is a plain value:
// construct it with NewGame, mutate it only through Start, Reset and Move.
type Game struct {
	Board       [9]string `json:"board"`
	Turn        string    `json:"turn"`
	Phase       string    `json:"phase"`
	Winner      string    `json:"winner,omitempty"`
	LastOutcome string    `json:"last_outcome,omitempty"`
}

func NewGame() *Game {
	return &Game{
		Board: [9]string{},
		Turn:  PlayerX,
		Phase: PhaseWaiting,
	}
}

// Start begins a game that has not been started yet. It is a no-op in any
// other phase, so pressing start mid-game never corrupts the board; an
// ended game is restarted through Reset(true) instead.
func (that *Game) Start() {
	if that.Phase != PhaseWaiting {
		return
	}

	that.Phase = PhaseOngoing
	that.Reset(false)
}

// Reset clears the board and hands the first turn back to X. With hard set
// it also forces the phase to ongoing, which is what the restart button
// does after a finished game. Without it the phase is left alone: Start
// sets the phase itself before clearing.
func (that *Game) Reset(hard bool) {
	that.Board = [9]string{}
	that.Turn = PlayerX
	that.Winner = ""
	that.LastOutcome = ""

	if hard {
		that.Phase = PhaseOngoing
	}
}

// Move places the current player's mark at cell. Invalid moves — wrong
// phase, index out of range, occupied cell — are silently rejected and
// leave the game untouched; the UI disables those cells anyway, this is
// the second check.
func (that *Game) Move(cell int) MoveResult {
	if that.Phase != PhaseOngoing {
		return MoveResult{Outcome: OutcomeRejected, Cell: cell}
	}

	if cell < 0 || cell >= len(that.Board) {
		return MoveResult{Outcome: OutcomeRejected, Cell: cell}
	}

	if that.Board[cell] != EmptyCell {
		return MoveResult{Outcome: OutcomeRejected, Cell: cell}
	}

	that.Board[cell] = that.Turn

	// win check first, draw only on a full board with no line
	if winner := that.CheckWinner(); winner != EmptyCell {
		that.Winner = winner
		that.Phase = PhaseFinished
		that.LastOutcome = OutcomeWin

		return MoveResult{Outcome: OutcomeWin, Winner: winner, Cell: cell}
	}

	if that.IsDraw() {
		that.Winner = PlayerTie
		that.Phase = PhaseFinished
		that.LastOutcome = OutcomeDraw

		return MoveResult{Outcome: OutcomeDraw, Cell: cell}
	}

	that.Turn = toggleMark(that.Turn)
	that.LastOutcome = OutcomeContinue

	return MoveResult{Outcome: OutcomeContinue, Cell: cell}
}

// CheckWinner scans the winning lines in fixed order and returns the mark
// holding the first complete one, or EmptyCell when there is none.
func (that *Game) CheckWinner() string {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

// IsDraw reports whether every cell is taken. Callers must check
// CheckWinner first: a full board with a line is a win, not a draw.
func (that *Game) IsDraw() bool {
	for _, cell := range that.Board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that *Game) IsWaiting() bool {
	return that.Phase == PhaseWaiting
}

func (that *Game) IsOngoing() bool {
	return that.Phase == PhaseOngoing
}

func (that *Game) IsFinished() bool {
	return that.Phase == PhaseFinished
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
