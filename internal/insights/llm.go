package insights

import "context"

// LLM is the narrative-generation capability behind the insight phases.
// The pipeline only ever sends prompt text and receives reply text, so the
// parsing and fallback logic is testable with a stub implementation.
type LLM interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
