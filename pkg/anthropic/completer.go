package anthropic

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
)

// Completer adapts a Client to the one-prompt-in, one-text-out shape the
// insight phases consume, applying a per-call timeout. The upstream scripts
// this pipeline replaces carried no timeout on the model call at all.
type Completer struct {
	Client    Client
	Model     string
	MaxTokens int64
	Timeout   time.Duration
	Phase     string // usage-log attribution
}

// Complete sends one prompt and returns the reply text.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	maxTokens := c.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}

	resp, err := c.Client.CreateMessage(ctx, MessageRequest{
		Model:     c.Model,
		MaxTokens: maxTokens,
		Prompt:    prompt,
	})
	if err != nil {
		return "", eris.Wrap(err, "anthropic: complete")
	}

	resp.Usage.LogUsage(resp.Model, c.Phase)
	return resp.Text, nil
}
