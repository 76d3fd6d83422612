package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm.go -package=mocks salescoach-ai/internal/llm Embedder,Completer,Speaker

import "context"

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// Model overrides the client's default model when set.
	Model string

	// MaxTokens caps the completion length. 0 means no limit.
	MaxTokens int

	// Temperature controls the randomness of the output. 0 leaves the
	// provider default.
	Temperature float64

	// JSON asks the provider for a single JSON object response.
	JSON bool
}

// Embedder turns text into embedding vectors.
type Embedder interface {
	// Embed returns the embedding of a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts returns one embedding per input text, in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer produces chat completions.
type Completer interface {
	// Complete returns the assistant reply to messages.
	Complete(ctx context.Context, messages []Message, params ChatParams) (string, error)

	// StreamChat streams the assistant reply, calling callback for each
	// non-empty content delta.
	StreamChat(ctx context.Context, messages []Message, params ChatParams, callback func(chunk string) error) error
}

// Speaker synthesizes speech.
type Speaker interface {
	// TextToSpeech returns MP3 audio for text. An empty voice uses the
	// client's default voice.
	TextToSpeech(ctx context.Context, text, voice string) ([]byte, error)
}
