package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salescoach-ai/internal/learning"
	"salescoach-ai/internal/service"
)

// LearningHandler handles HTTP requests for learning paths and activities.
type LearningHandler struct {
	learning service.LearningService
}

// NewLearningHandler creates a new LearningHandler.
func NewLearningHandler(learning service.LearningService) *LearningHandler {
	return &LearningHandler{learning: learning}
}

// GenerateRequest represents the HTTP request payload for generating a learning path.
//
// swagger:model GenerateRequest
type GenerateRequest struct {
	ActivityCount int                     `json:"activity_count,omitempty"`
	Types         []learning.ActivityType `json:"types,omitempty"`
	Focus         string                  `json:"focus,omitempty"`
}

// List handles GET /api/topics/{topicID}/learning-paths.
func (h *LearningHandler) List(w http.ResponseWriter, r *http.Request) {
	paths, err := h.learning.List(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to list learning paths")
		return
	}
	writeSuccess(w, http.StatusOK, paths)
}

// Generate handles POST /api/topics/{topicID}/learning-paths. An empty
// body uses the defaults.
func (h *LearningHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	path, err := h.learning.Generate(r.Context(), service.GenerateRequest{
		TopicID:       chi.URLParam(r, "topicID"),
		ActivityCount: req.ActivityCount,
		Types:         req.Types,
		Focus:         req.Focus,
	})
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to generate learning path")
		return
	}
	writeSuccess(w, http.StatusCreated, path)
}

// Get handles GET /api/learning-paths/{pathID}.
func (h *LearningHandler) Get(w http.ResponseWriter, r *http.Request) {
	path, err := h.learning.Get(r.Context(), chi.URLParam(r, "pathID"))
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to load learning path")
		return
	}
	writeSuccess(w, http.StatusOK, path)
}

// Delete handles DELETE /api/learning-paths/{pathID}.
func (h *LearningHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "pathID")
	if err := h.learning.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r.Context(), err, "Failed to delete learning path")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"id": id})
}

// UpdateActivity handles PUT /api/activities/{activityID}. The body is a
// full activity: {"title", "type", "config"}.
func (h *LearningHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decodeJSON(w, r, &raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var activity learning.Activity
	if err := json.Unmarshal(raw, &activity); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid activity: "+err.Error())
		return
	}

	updated, err := h.learning.UpdateActivity(r.Context(), chi.URLParam(r, "activityID"), activity)
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to update activity")
		return
	}
	writeSuccess(w, http.StatusOK, updated)
}
