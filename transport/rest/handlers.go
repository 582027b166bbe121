package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hotseatgames/tictactoe-backend/internal/apperror"
	"github.com/hotseatgames/tictactoe-backend/internal/engine"
	"github.com/hotseatgames/tictactoe-backend/internal/presenter"
)

type sessionResponse struct {
	SessionID string             `json:"session_id"`
	View      presenter.View     `json:"view"`
	Move      *engine.MoveResult `json:"move,omitempty"`
}

type moveRequest struct {
	Cell int `json:"cell"`
}

func (that *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.service.CreateSession(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, sessionResponse{
		SessionID: session.ID,
		View:      presenter.Render(session.Game),
	})
}

func (that *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.service.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: session.ID,
		View:      presenter.Render(session.Game),
	})
}

func (that *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.service.StartGame(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: session.ID,
		View:      presenter.Render(session.Game),
	})
}

func (that *Server) handleRestartGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.service.RestartGame(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: session.ID,
		View:      presenter.Render(session.Game),
	})
}

func (that *Server) handleMakeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, result, err := that.service.MakeMove(r.Context(), chi.URLParam(r, "sessionID"), req.Cell)
	if err != nil {
		that.writeError(w, err)
		return
	}

	// a rejected move is still a 200: the engine answered, it just said no
	that.writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: session.ID,
		View:      presenter.Render(session.Game),
		Move:      &result,
	})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *Server) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperror.ErrSessionNotFound) {
		http.Error(w, apperror.ErrSessionNotFound.Error(), http.StatusNotFound)
		return
	}

	that.logger.Error("request failed", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
