package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/hotseatgames/tictactoe-backend/internal/engine"
	"github.com/hotseatgames/tictactoe-backend/internal/entity"
	"github.com/hotseatgames/tictactoe-backend/internal/metrics"
	"github.com/hotseatgames/tictactoe-backend/internal/repository"
)

// GameplayService drives one hot-seat game per session: the transports
// forward button presses here, the engine decides what they mean, and the
// resulting state goes back to the repository.
//
// Engine rejections are not errors. A rejected move returns the unchanged
// session and a MoveResult with OutcomeRejected; errors are reserved for
// storage and lookup failures.
type GameplayService interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	DeleteSession(ctx context.Context, id string) error

	StartGame(ctx context.Context, id string) (*entity.Session, error)
	RestartGame(ctx context.Context, id string) (*entity.Session, error)
	MakeMove(ctx context.Context, id string, cell int) (*entity.Session, engine.MoveResult, error)
}

type gameplayService struct {
	logger *slog.Logger

	sessionRepo repository.SessionRepository
	metrics     *metrics.Metrics
}

func NewGameplayService(logger *slog.Logger, sessionRepo repository.SessionRepository, m *metrics.Metrics) GameplayService {
	return &gameplayService{
		logger:      logger.With("component", "gameplay"),
		sessionRepo: sessionRepo,
		metrics:     m,
	}
}

func (that *gameplayService) CreateSession(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(newSessionID())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.metrics.SessionsCreated.Inc()
	that.logger.Info("session created", "session_id", session.ID)

	return session, nil
}

func (that *gameplayService) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

func (that *gameplayService) DeleteSession(ctx context.Context, id string) error {
	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (that *gameplayService) StartGame(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	wasWaiting := session.Game.IsWaiting()
	session.Game.Start()

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if wasWaiting {
		that.metrics.GamesStarted.Inc()
		that.logger.Info("game started", "session_id", session.ID)
	}

	return session, nil
}

func (that *gameplayService) RestartGame(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	session.Game.Reset(true)

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	that.metrics.GamesRestarted.Inc()
	that.logger.Info("game restarted", "session_id", session.ID)

	return session, nil
}

func (that *gameplayService) MakeMove(ctx context.Context, id string, cell int) (*entity.Session, engine.MoveResult, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, engine.MoveResult{}, fmt.Errorf("failed to get session by id: %w", err)
	}

	result := session.Game.Move(cell)
	that.metrics.MovesTotal.WithLabelValues(result.Outcome).Inc()

	// rejected moves did not change anything, skip the write
	if result.Outcome == engine.OutcomeRejected {
		that.logger.Debug("move rejected", "session_id", session.ID, "cell", cell)
		return session, result, nil
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, engine.MoveResult{}, fmt.Errorf("failed to update session: %w", err)
	}

	switch result.Outcome {
	case engine.OutcomeWin:
		that.metrics.GamesFinished.WithLabelValues(result.Winner).Inc()
		that.logger.Info("game won", "session_id", session.ID, "winner", result.Winner)
	case engine.OutcomeDraw:
		that.metrics.GamesFinished.WithLabelValues("draw").Inc()
		that.logger.Info("game drawn", "session_id", session.ID)
	}

	return session, result, nil
}

func newSessionID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
