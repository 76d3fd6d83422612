package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"salescoach-ai/internal/service"
)

// TopicHandler handles HTTP requests for topics.
type TopicHandler struct {
	topics service.TopicService
}

// NewTopicHandler creates a new TopicHandler.
func NewTopicHandler(topics service.TopicService) *TopicHandler {
	return &TopicHandler{topics: topics}
}

// TopicRequest represents the HTTP request payload for creating or updating a topic.
//
// swagger:model TopicRequest
type TopicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// List handles GET /api/topics.
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topics.List(r.Context())
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to list topics")
		return
	}
	writeSuccess(w, http.StatusOK, topics)
}

// Create handles POST /api/topics.
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TopicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	topic, err := h.topics.Create(r.Context(), service.TopicRequest{Title: req.Title, Description: req.Description})
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to create topic")
		return
	}
	writeSuccess(w, http.StatusCreated, topic)
}

// Get handles GET /api/topics/{topicID}.
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	topic, err := h.topics.Get(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to load topic")
		return
	}
	writeSuccess(w, http.StatusOK, topic)
}

// Update handles PUT /api/topics/{topicID}.
func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req TopicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	topic, err := h.topics.Update(r.Context(), chi.URLParam(r, "topicID"), service.TopicRequest{Title: req.Title, Description: req.Description})
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to update topic")
		return
	}
	writeSuccess(w, http.StatusOK, topic)
}

// Delete handles DELETE /api/topics/{topicID}.
func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "topicID")
	if err := h.topics.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r.Context(), err, "Failed to delete topic")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"id": id})
}
