package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hotseatgames/tictactoe-backend/internal/apperror"
	"github.com/hotseatgames/tictactoe-backend/internal/entity"
	"github.com/hotseatgames/tictactoe-backend/internal/presenter"
)

// handleNewSession creates a session and binds the connection to it.
func (that *Server) handleNewSession(ctx context.Context, client *connection, message *Message) error {
	session, err := that.service.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	client.sessionID = session.ID

	return that.sendSession(ctx, client, message.Action, session)
}

// handleJoinSession re-binds the connection to an existing session, which
// is how a reloaded page finds its game again.
func (that *Server) handleJoinSession(ctx context.Context, client *connection, message *Message) error {
	var payload JoinPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return that.sendError(ctx, client, message.Action, apperror.ErrInvalidPayload.Error())
	}

	session, err := that.service.GetSession(ctx, payload.SessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		return that.sendError(ctx, client, message.Action, apperror.ErrSessionNotFound.Error())
	}

	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	client.sessionID = session.ID

	return that.sendSession(ctx, client, message.Action, session)
}

func (that *Server) handleStartGame(ctx context.Context, client *connection, message *Message) error {
	if client.sessionID == "" {
		return that.sendError(ctx, client, message.Action, apperror.ErrSessionNotFound.Error())
	}

	session, err := that.service.StartGame(ctx, client.sessionID)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	return that.sendSession(ctx, client, message.Action, session)
}

func (that *Server) handleRestartGame(ctx context.Context, client *connection, message *Message) error {
	if client.sessionID == "" {
		return that.sendError(ctx, client, message.Action, apperror.ErrSessionNotFound.Error())
	}

	session, err := that.service.RestartGame(ctx, client.sessionID)
	if err != nil {
		return fmt.Errorf("failed to restart game: %w", err)
	}

	return that.sendSession(ctx, client, message.Action, session)
}

func (that *Server) handleGameTurn(ctx context.Context, client *connection, message *Message) error {
	if client.sessionID == "" {
		return that.sendError(ctx, client, message.Action, apperror.ErrSessionNotFound.Error())
	}

	var payload TurnPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return that.sendError(ctx, client, message.Action, apperror.ErrInvalidPayload.Error())
	}

	session, result, err := that.service.MakeMove(ctx, client.sessionID, payload.Cell)
	if err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	view := presenter.Render(session.Game)

	return that.sendMessage(ctx, client, message.Action, ResponsePayload{
		SessionID: session.ID,
		View:      &view,
		Move:      &result,
	})
}

func (that *Server) handleGameState(ctx context.Context, client *connection, message *Message) error {
	if client.sessionID == "" {
		return that.sendError(ctx, client, message.Action, apperror.ErrSessionNotFound.Error())
	}

	session, err := that.service.GetSession(ctx, client.sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	return that.sendSession(ctx, client, message.Action, session)
}

func (that *Server) sendSession(ctx context.Context, client *connection, action string, session *entity.Session) error {
	view := presenter.Render(session.Game)

	return that.sendMessage(ctx, client, action, ResponsePayload{
		SessionID: session.ID,
		View:      &view,
	})
}
