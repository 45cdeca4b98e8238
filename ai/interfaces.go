package ai

import "context"

// ChatModel generates text from an ordered sequence of role-tagged messages.
// Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// Generate dispatches one completion request and returns the text of the
	// first choice. The request is never mutated after dispatch.
	// May fail with transport or rate-limit errors; when req.JSON is set the
	// returned text is still not guaranteed to be valid JSON.
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice preserves input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates inference services for convenient initialization and
// lifecycle management. A provider is constructed once at process start and
// passed by reference into every component that needs it; there is no hidden
// global client state.
type Provider interface {
	// Chat returns the chat completion service used for answer generation.
	Chat() ChatModel

	// QuickChat returns a chat completion service tuned for short structured
	// calls (classification, validation, headings). It may share the model
	// with Chat but uses a shorter transport timeout.
	QuickChat() ChatModel

	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	Close() error
}
