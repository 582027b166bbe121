package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotseatgames/tictactoe-backend/internal/apperror"
	"github.com/hotseatgames/tictactoe-backend/internal/engine"
	"github.com/hotseatgames/tictactoe-backend/internal/metrics"
	"github.com/hotseatgames/tictactoe-backend/internal/repository"
)

func newTestService(t *testing.T) (context.Context, GameplayService, *metrics.Metrics) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	sessionRepo := repository.NewSessionRepository(client, time.Hour)

	return context.Background(), NewGameplayService(logger, sessionRepo, m), m
}

func TestGameplayService_CreateSession(t *testing.T) {
	ctx, svc, m := newTestService(t)

	// When: a session is created
	session, err := svc.CreateSession(ctx)

	// Then: it holds a fresh waiting game and is retrievable
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)
	assert.Equal(t, engine.PhaseWaiting, session.Game.Phase)

	retrieved, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.SessionsCreated))
}

func TestGameplayService_GetSession(t *testing.T) {
	ctx, svc, _ := newTestService(t)

	// When: an unknown session is requested
	_, err := svc.GetSession(ctx, "no-such-session")

	// Then: the not-found sentinel surfaces through the wrap
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestGameplayService_StartGame(t *testing.T) {
	t.Run("starts a waiting game", func(t *testing.T) {
		ctx, svc, m := newTestService(t)

		session, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		// When: the game is started
		started, err := svc.StartGame(ctx, session.ID)

		// Then: the stored game is ongoing with X to move
		require.NoError(t, err)
		assert.Equal(t, engine.PhaseOngoing, started.Game.Phase)
		assert.Equal(t, engine.PlayerX, started.Game.Turn)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.GamesStarted))
	})

	t.Run("double start leaves the game untouched", func(t *testing.T) {
		ctx, svc, m := newTestService(t)

		session, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		_, err = svc.StartGame(ctx, session.ID)
		require.NoError(t, err)

		_, result, err := svc.MakeMove(ctx, session.ID, 4)
		require.NoError(t, err)
		require.Equal(t, engine.OutcomeContinue, result.Outcome)

		// When: start is pressed again mid-game
		started, err := svc.StartGame(ctx, session.ID)

		// Then: the board keeps its mark and only one start was counted
		require.NoError(t, err)
		assert.Equal(t, engine.PlayerX, started.Game.Board[4])
		assert.Equal(t, engine.PhaseOngoing, started.Game.Phase)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.GamesStarted))
	})
}

func TestGameplayService_MakeMove(t *testing.T) {
	t.Run("accepted move is persisted", func(t *testing.T) {
		ctx, svc, _ := newTestService(t)

		session, err := svc.CreateSession(ctx)
		require.NoError(t, err)
		_, err = svc.StartGame(ctx, session.ID)
		require.NoError(t, err)

		// When: X moves at cell 0
		_, result, err := svc.MakeMove(ctx, session.ID, 0)
		require.NoError(t, err)
		require.Equal(t, engine.OutcomeContinue, result.Outcome)

		// Then: a reload sees the move
		reloaded, err := svc.GetSession(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, engine.PlayerX, reloaded.Game.Board[0])
		assert.Equal(t, engine.PlayerO, reloaded.Game.Turn)
	})

	t.Run("rejected move changes nothing", func(t *testing.T) {
		ctx, svc, m := newTestService(t)

		session, err := svc.CreateSession(ctx)
		require.NoError(t, err)

		// When: a move is attempted before the game starts
		_, result, err := svc.MakeMove(ctx, session.ID, 0)

		// Then: no error, outcome rejected, stored game untouched
		require.NoError(t, err)
		assert.Equal(t, engine.OutcomeRejected, result.Outcome)

		reloaded, err := svc.GetSession(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, engine.PhaseWaiting, reloaded.Game.Phase)
		assert.Equal(t, [9]string{}, reloaded.Game.Board)

		assert.Equal(t, float64(1), testutil.ToFloat64(m.MovesTotal.WithLabelValues(engine.OutcomeRejected)))
	})

	t.Run("winning move finishes and keeps the session", func(t *testing.T) {
		ctx, svc, m := newTestService(t)

		session, err := svc.CreateSession(ctx)
		require.NoError(t, err)
		_, err = svc.StartGame(ctx, session.ID)
		require.NoError(t, err)

		// When: X fills the top row
		var result engine.MoveResult
		for _, cell := range []int{0, 3, 1, 4, 2} {
			_, result, err = svc.MakeMove(ctx, session.ID, cell)
			require.NoError(t, err)
		}

		// Then: the win is reported and the session survives for a restart
		require.Equal(t, engine.OutcomeWin, result.Outcome)
		assert.Equal(t, engine.PlayerX, result.Winner)

		reloaded, err := svc.GetSession(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, engine.PhaseFinished, reloaded.Game.Phase)

		assert.Equal(t, float64(1), testutil.ToFloat64(m.GamesFinished.WithLabelValues(engine.PlayerX)))
	})
}

func TestGameplayService_RestartGame(t *testing.T) {
	ctx, svc, m := newTestService(t)

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.StartGame(ctx, session.ID)
	require.NoError(t, err)

	for _, cell := range []int{0, 3, 1, 4, 2} {
		_, _, err = svc.MakeMove(ctx, session.ID, cell)
		require.NoError(t, err)
	}

	// When: the finished game is restarted
	restarted, err := svc.RestartGame(ctx, session.ID)

	// Then: the board is cleared, X is up and the game is live again
	require.NoError(t, err)
	assert.Equal(t, [9]string{}, restarted.Game.Board)
	assert.Equal(t, engine.PlayerX, restarted.Game.Turn)
	assert.Equal(t, engine.PhaseOngoing, restarted.Game.Phase)
	assert.Empty(t, restarted.Game.Winner)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.GamesRestarted))
}

func TestGameplayService_DeleteSession(t *testing.T) {
	ctx, svc, _ := newTestService(t)

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	// When: the session is deleted
	err = svc.DeleteSession(ctx, session.ID)
	require.NoError(t, err)

	// Then: it can no longer be found
	_, err = svc.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
