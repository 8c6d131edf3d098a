package story

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// The page count is a hint to the model, not an enforced bound; the
// segmenter determines how many pages actually come back.
const narrativePrompt = "Write a 5-page story based on this idea: %s."

// TextGenerator produces a raw narrative from a prompt.
type TextGenerator interface {
	GenerateNarrative(ctx context.Context, prompt string) (string, error)
}

// NarrativeGenerator wraps the text capability with the fixed story prompt.
type NarrativeGenerator struct {
	client TextGenerator
}

// NewNarrativeGenerator constructs a NarrativeGenerator.
func NewNarrativeGenerator(client TextGenerator) (*NarrativeGenerator, error) {
	if client == nil {
		return nil, errors.New("story: text generator is required")
	}
	return &NarrativeGenerator{client: client}, nil
}

// Generate returns the full raw narrative for a premise.
func (g *NarrativeGenerator) Generate(ctx context.Context, premise string) (string, error) {
	if strings.TrimSpace(premise) == "" {
		return "", errors.New("story: premise is required")
	}
	return g.client.GenerateNarrative(ctx, fmt.Sprintf(narrativePrompt, premise))
}
