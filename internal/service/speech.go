package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_speech_service.go -package=mocks salescoach-ai/internal/service SpeechService

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/llm"
)

// MaxSpeechLength caps the text of one speech request in characters.
const MaxSpeechLength = 4096

// SpeechRequest is text to read aloud.
type SpeechRequest struct {
	Text  string
	Voice string
}

// SpeechService reads text aloud.
type SpeechService interface {
	// Synthesize returns MP3 audio.
	Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error)
}

type speechService struct {
	speaker llm.Speaker
}

// NewSpeechService creates a new SpeechService.
func NewSpeechService(speaker llm.Speaker) SpeechService {
	return &speechService{speaker: speaker}
}

func (s *speechService) Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, &ValidationError{Field: "text", Message: "cannot be empty"}
	}
	if utf8.RuneCountInString(text) > MaxSpeechLength {
		return nil, &ValidationError{Field: "text", Message: fmt.Sprintf("must be at most %d characters", MaxSpeechLength)}
	}

	audio, err := s.speaker.TextToSpeech(ctx, text, strings.TrimSpace(req.Voice))
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to synthesize speech", "error", err)
		return nil, external(err, "failed to synthesize speech")
	}
	return audio, nil
}
