package llm

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"

	"salescoach-ai/internal/contextutil"
)

// maxSpeechInput is the provider's limit on characters per request.
const maxSpeechInput = 4096

// TextToSpeech synthesizes text as MP3 audio.
func (c *Client) TextToSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("text is empty")
	}
	if len([]rune(text)) > maxSpeechInput {
		return nil, fmt.Errorf("text exceeds %d characters", maxSpeechInput)
	}
	if voice == "" {
		voice = c.TTSVoice
	}

	audio, err := contextutil.CallWithTimeout(ctx, c.timeout, func(ctx context.Context) ([]byte, error) {
		resp, err := c.api.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
			Input:          text,
			Model:          c.TTSModel,
			Voice:          openai.AudioSpeechNewParamsVoice(voice),
			ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
		})
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("speech response is empty")
	}
	return audio, nil
}
