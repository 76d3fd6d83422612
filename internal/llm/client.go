package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"salescoach-ai/internal/contextutil"
)

var (
	_ Embedder  = (*Client)(nil)
	_ Completer = (*Client)(nil)
	_ Speaker   = (*Client)(nil)
)

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL             string // OpenAI-compatible server root, without /v1
	APIKey              string
	Model               string
	EmbeddingModel      string
	EmbeddingDimensions int // expected vector size; 0 skips validation
	TTSModel            string
	TTSVoice            string
	Timeout             time.Duration
	HTTPClient          *http.Client
}

// Client talks to an OpenAI-compatible API for chat, embeddings and speech.
// Requests are never retried.
type Client struct {
	api                 openai.Client
	Model               string
	EmbeddingModel      string
	EmbeddingDimensions int
	TTSModel            string
	TTSVoice            string
	timeout             time.Duration
}

// NewClient creates a new LLM client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/v1/"))
	}

	return &Client{
		api:                 openai.NewClient(opts...),
		Model:               cfg.Model,
		EmbeddingModel:      cfg.EmbeddingModel,
		EmbeddingDimensions: cfg.EmbeddingDimensions,
		TTSModel:            cfg.TTSModel,
		TTSVoice:            cfg.TTSVoice,
		timeout:             cfg.Timeout,
	}
}

// Complete sends a chat completion request and returns the first choice.
func (c *Client) Complete(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages")
	}
	logger := contextutil.LoggerFromContext(ctx)
	req := c.chatRequest(messages, params)

	start := time.Now()
	completion, err := contextutil.CallWithTimeout(ctx, c.timeout, func(ctx context.Context) (*openai.ChatCompletion, error) {
		return c.api.Chat.Completions.New(ctx, req)
	})
	if err != nil {
		logger.ErrorContext(ctx, "chat completion failed", "model", req.Model, "error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	logger.DebugContext(ctx, "chat completion finished",
		"model", req.Model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", completion.Usage.PromptTokens,
		"completion_tokens", completion.Usage.CompletionTokens,
	)
	return completion.Choices[0].Message.Content, nil
}

// StreamChat streams a chat completion, calling callback for each content delta.
// The request lives as long as ctx.
func (c *Client) StreamChat(ctx context.Context, messages []Message, params ChatParams, callback func(chunk string) error) error {
	if len(messages) == 0 {
		return fmt.Errorf("no messages")
	}

	stream := c.api.Chat.Completions.NewStreaming(ctx, c.chatRequest(messages, params))
	defer func() {
		_ = stream.Close()
	}()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if content := chunk.Choices[0].Delta.Content; content != "" {
			if err := callback(content); err != nil {
				return fmt.Errorf("callback error: %w", err)
			}
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("failed to read stream: %w", err)
	}
	return nil
}

func (c *Client) chatRequest(messages []Message, params ChatParams) openai.ChatCompletionNewParams {
	model := params.Model
	if model == "" {
		model = c.Model
	}

	req := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: toOpenAIMessages(messages),
	}
	if params.Temperature > 0 {
		req.Temperature = openai.Float(params.Temperature)
	}
	if params.MaxTokens > 0 {
		req.MaxTokens = openai.Int(int64(params.MaxTokens))
	}
	if params.JSON {
		req.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}
	return req
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
