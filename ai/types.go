package ai

// Role tags the origin of one message in a generation request.
type Role string

const (
	// RoleSystem carries instructions that frame the model's behavior.
	RoleSystem Role = "system"
	// RoleHuman carries user-authored text.
	RoleHuman Role = "human"
	// RoleAI carries model-authored text from earlier turns.
	RoleAI Role = "ai"
)

// Message is one role-tagged entry in a generation request.
type Message struct {
	Role    Role
	Content string
}

// GenerationRequest describes one chat completion call.
// A request is constructed per call and never mutated after dispatch.
type GenerationRequest struct {
	Messages    []Message
	MaxTokens   int
	Temperature float64
	TopP        float64

	// JSON requests structured JSON output from the endpoint. The response
	// may still be malformed; callers must clean and parse defensively.
	JSON bool

	// Seed, when non-zero, requests deterministic sampling. Used by the
	// suggestion generator to vary outputs across otherwise identical calls.
	Seed int
}
