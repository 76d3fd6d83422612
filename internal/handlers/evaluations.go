package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"salescoach-ai/internal/service"
)

// EvaluationHandler handles HTTP requests for role-play evaluations.
type EvaluationHandler struct {
	evaluations service.EvaluationService
}

// NewEvaluationHandler creates a new EvaluationHandler.
func NewEvaluationHandler(evaluations service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations}
}

// EvaluateRequest represents the HTTP request payload for scoring a role-play.
//
// swagger:model EvaluateRequest
type EvaluateRequest struct {
	Scenario   string `json:"scenario,omitempty"`
	Transcript string `json:"transcript"`
}

// List handles GET /api/topics/{topicID}/evaluations.
func (h *EvaluationHandler) List(w http.ResponseWriter, r *http.Request) {
	evals, err := h.evaluations.List(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to list evaluations")
		return
	}
	writeSuccess(w, http.StatusOK, evals)
}

// Evaluate handles POST /api/topics/{topicID}/evaluations.
func (h *EvaluationHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	eval, err := h.evaluations.Evaluate(r.Context(), service.EvaluateRequest{
		TopicID:    chi.URLParam(r, "topicID"),
		Scenario:   req.Scenario,
		Transcript: req.Transcript,
	})
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to evaluate transcript")
		return
	}
	writeSuccess(w, http.StatusCreated, eval)
}

// Get handles GET /api/evaluations/{evaluationID}.
func (h *EvaluationHandler) Get(w http.ResponseWriter, r *http.Request) {
	eval, err := h.evaluations.Get(r.Context(), chi.URLParam(r, "evaluationID"))
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to load evaluation")
		return
	}
	writeSuccess(w, http.StatusOK, eval)
}
