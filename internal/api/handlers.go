package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lehmann314159/wordtrainer/internal/models"
	"github.com/lehmann314159/wordtrainer/internal/services"
)

// Handler contains the JSON API handlers
type Handler struct {
	trainer *Trainer
}

// NewHandler creates a new handler
func NewHandler(trainer *Trainer) *Handler {
	return &Handler{
		trainer: trainer,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DaysResponse is the body of GET /api/v1/days
type DaysResponse struct {
	Days         []models.DayStatus `json:"days"`
	TotalLearned int                `json:"total_learned"`
	TotalWords   int                `json:"total_words"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// statusFor maps a domain error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidDay),
		errors.Is(err, services.ErrWordIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidCommand),
		errors.Is(err, services.ErrStaleSession),
		errors.Is(err, services.ErrNoCurrentWord):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetState handles GET /api/v1/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.trainer.State())
}

// Dispatch handles POST /api/v1/commands
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var cmd services.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if cmd.Type == "" {
		writeError(w, http.StatusBadRequest, "command type is required")
		return
	}

	state, err := h.trainer.Dispatch(r.Context(), cmd)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// ListDays handles GET /api/v1/days
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	state := h.trainer.State()

	writeJSON(w, http.StatusOK, DaysResponse{
		Days:         state.Days,
		TotalLearned: state.TotalLearned,
		TotalWords:   state.TotalWords,
	})
}

// GetWord handles GET /api/v1/words/{index}
func (h *Handler) GetWord(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid word index")
		return
	}

	card, err := h.trainer.Card(index)
	if err != nil {
		writeError(w, statusFor(err), "word not found")
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
