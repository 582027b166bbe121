package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/hotseatgames/tictactoe-backend/internal/apperror"
	"github.com/hotseatgames/tictactoe-backend/internal/service"
)

// connection is the per-client state: the socket and the session the
// client is currently playing in. Each connection is served by a single
// goroutine, so no locking is needed around sessionID.
type connection struct {
	conn      *websocket.Conn
	sessionID string
}

type handlerFunc func(ctx context.Context, client *connection, message *Message) error

type Server struct {
	logger  *slog.Logger
	service service.GameplayService

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameplay service.GameplayService) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		service: gameplay,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers["session:new"] = server.handleNewSession
	server.handlers["session:join"] = server.handleJoinSession
	server.handlers["game:start"] = server.handleStartGame
	server.handlers["game:restart"] = server.handleRestartGame
	server.handlers["game:turn"] = server.handleGameTurn
	server.handlers["game:state"] = server.handleGameState

	return server
}

// Handler returns the HTTP handler that upgrades to WebSocket and serves
// the message loop for one client.
func (that *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			that.logger.Error("failed to accept websocket connection", "error", err)
			return
		}

		that.logger.Info("websocket connection established")

		client := &connection{conn: conn}
		if err = that.handleMessages(r.Context(), client); err != nil {
			that.logger.Debug("connection closed", "error", err)
		}

		_ = conn.Close(websocket.StatusNormalClosure, "bye")
	})
}

// Start serves the WebSocket endpoint on /ws until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that.Handler())

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		return nil
	}
}

// handleMessages reads the client's messages one at a time and dispatches
// them by action. Malformed messages and unknown actions get an error
// response and the loop keeps going; a read error ends the connection.
func (that *Server) handleMessages(ctx context.Context, client *connection) error {
	for {
		_, data, err := client.conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			that.logger.Error("failed to unmarshal message", "error", err)
			_ = that.sendError(ctx, client, "error", "invalid message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			that.logger.Error("unknown action", "action", message.Action)
			_ = that.sendError(ctx, client, message.Action, apperror.ErrUnknownAction.Error())
			continue
		}

		if err = handler(ctx, client, &message); err != nil {
			that.logger.Error("failed to handle message", "action", message.Action, "error", err)
			_ = that.sendError(ctx, client, message.Action, "internal error")
		}
	}
}

func (that *Server) sendMessage(ctx context.Context, client *connection, action string, payload ResponsePayload) error {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: rawPayload})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = client.conn.Write(ctx, websocket.MessageText, response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(ctx context.Context, client *connection, action, reason string) error {
	return that.sendMessage(ctx, client, action, ResponsePayload{Error: reason})
}
