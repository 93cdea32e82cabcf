package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"quiz-league-service/internal/app"
	"quiz-league-service/internal/domain"
)

// GameHandler exposes the session engine to the boundary layer over JSON.
// Authentication happens upstream; the engine re-validates only the domain
// invariants (verified quiz, one live attempt per player and quiz).
type GameHandler struct {
	engine    *app.GameEngine
	standings app.StandingsBoard
	tableSize int
}

func NewGameHandler(engine *app.GameEngine, standings app.StandingsBoard, tableSize int) *GameHandler {
	if tableSize <= 0 {
		tableSize = 10
	}
	return &GameHandler{engine: engine, standings: standings, tableSize: tableSize}
}

// Register mounts the game routes on the mux.
func (h *GameHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/game/start", h.StartGame)
	mux.HandleFunc("/game/end", h.EndGame)
	mux.HandleFunc("/standings", h.Standings)
}

type startRequest struct {
	PlayerID string `json:"playerId"`
	QuizID   string `json:"quizId"`
}

type endRequest struct {
	PlayerID string                   `json:"playerId"`
	QuizID   string                   `json:"quizId"`
	Answers  map[string]domain.Answer `json:"answers"`
}

type rewardResponse struct {
	Score int `json:"score"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// StartGame opens a timed attempt. Responds 200 with no body on success.
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" || req.QuizID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "playerId and quizId are required"})
		return
	}
	if err := h.engine.StartAttempt(r.Context(), req.PlayerID, req.QuizID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// EndGame scores the submitted answers and returns the credited reward.
func (h *GameHandler) EndGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req endRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" || req.QuizID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "playerId and quizId are required"})
		return
	}
	reward, err := h.engine.FinishAttempt(r.Context(), req.PlayerID, req.QuizID, req.Answers)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rewardResponse{Score: reward})
}

// Standings returns the current league table.
func (h *GameHandler) Standings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	limit := h.tableSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	table, err := h.standings.Top(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *GameHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrQuizNotFound), errors.Is(err, domain.ErrPlayerNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrQuizNotVerified), errors.Is(err, domain.ErrAttemptInProgress):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNoActiveAttempt):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}
