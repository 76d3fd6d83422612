package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/service"
	"salescoach-ai/internal/vectorstore"
)

// ChatHandler handles HTTP requests for grounded questions and section search.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ChatRequest represents the HTTP request payload for chat.
//
// swagger:model ChatRequest
type ChatRequest struct {
	Question string `json:"question"`
	TopicID  string `json:"topic_id,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Rerank   bool   `json:"rerank,omitempty"`
}

// SearchRequest represents the HTTP request payload for section search.
//
// swagger:model SearchRequest
type SearchRequest struct {
	Query   string `json:"query"`
	TopicID string `json:"topic_id,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// SearchResponse lists the matching sections.
//
// swagger:model SearchResponse
type SearchResponse struct {
	Results []vectorstore.SearchResult `json:"results"`
}

// ServeHTTP handles POST /api/chat. With ?stream=true the answer is sent
// as Server-Sent Events; ?debug=true adds retrieval details.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcReq := service.ChatRequest{
		Question: req.Question,
		TopicID:  req.TopicID,
		Limit:    req.Limit,
		Rerank:   req.Rerank,
		Debug:    r.URL.Query().Get("debug") == "true",
	}

	if r.URL.Query().Get("stream") == "true" {
		h.handleStreamingChat(w, ctx, svcReq)
		return
	}

	resp, err := h.chatService.Ask(ctx, svcReq)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process chat request")
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

// handleStreamingChat streams the answer using Server-Sent Events. Errors
// raised before the first chunk get a regular error envelope; later ones
// are sent as an "error" event.
func (h *ChatHandler) handleStreamingChat(w http.ResponseWriter, ctx context.Context, req service.ChatRequest) {
	logger := contextutil.LoggerFromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	started := false
	start := func() {
		if started {
			return
		}
		started = true
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
	}

	refs, err := h.chatService.StreamAsk(ctx, req, func(chunk string) error {
		start()
		if err := writeEvent(w, "", chunk); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		if !started {
			handleServiceError(w, ctx, err, "Failed to process chat request")
			return
		}
		logger.ErrorContext(ctx, "error streaming chat", "error", err)
		_, message := errorStatus(err, "Failed to process chat request")
		payload, _ := json.Marshal(Envelope{Status: "error", Message: message})
		_ = writeEvent(w, "error", string(payload))
		flusher.Flush()
		return
	}

	start()
	if payload, err := json.Marshal(refs); err == nil {
		_ = writeEvent(w, "references", string(payload))
	}
	_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

// writeEvent writes one SSE event. Multi-line data is split over several
// data fields so clients rejoin it with newlines.
func writeEvent(w http.ResponseWriter, event, data string) error {
	var b strings.Builder
	if event != "" {
		fmt.Fprintf(&b, "event: %s\n", event)
	}
	for _, line := range strings.Split(data, "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")
	_, err := fmt.Fprint(w, b.String())
	return err
}

// Search handles POST /api/search.
func (h *ChatHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := h.chatService.Search(ctx, service.SearchRequest{
		Query:   req.Query,
		TopicID: req.TopicID,
		Limit:   req.Limit,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to search sections")
		return
	}
	writeSuccess(w, http.StatusOK, SearchResponse{Results: results})
}

