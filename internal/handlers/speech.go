package handlers

import (
	"fmt"
	"net/http"

	"salescoach-ai/internal/service"
)

// SpeechHandler handles text-to-speech requests.
type SpeechHandler struct {
	speech service.SpeechService
}

// NewSpeechHandler creates a new SpeechHandler.
func NewSpeechHandler(speech service.SpeechService) *SpeechHandler {
	return &SpeechHandler{speech: speech}
}

// SpeechRequest represents the HTTP request payload for text-to-speech.
//
// swagger:model SpeechRequest
type SpeechRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

// ServeHTTP handles POST /api/tts and responds with MP3 audio.
func (h *SpeechHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SpeechRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	audio, err := h.speech.Synthesize(r.Context(), service.SpeechRequest{Text: req.Text, Voice: req.Voice})
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to synthesize speech")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", fmt.Sprint(len(audio)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}
