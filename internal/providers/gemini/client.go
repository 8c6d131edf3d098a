package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"storygen/internal/domain"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	StoryModel string
	ImageModel string
}

// Client wraps the google.golang.org/genai SDK behind the two calls the
// story pipeline needs: one text generation and one text+image generation.
type Client struct {
	api        *genai.Client
	storyModel string
	imageModel string
}

// NewClient constructs a Gemini client against the public Gemini API backend.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	storyModel := opts.StoryModel
	if storyModel == "" {
		storyModel = "gemini-2.0-flash"
	}
	imageModel := opts.ImageModel
	if imageModel == "" {
		imageModel = "gemini-2.0-flash-exp-image-generation"
	}

	return &Client{
		api:        api,
		storyModel: storyModel,
		imageModel: imageModel,
	}, nil
}

// GenerateNarrative runs a plain text generation and returns the text of the
// first candidate's first content part. A response without candidates aborts
// with domain.ErrNoCandidates.
func (c *Client) GenerateNarrative(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.Models.GenerateContent(ctx, c.storyModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate narrative: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", domain.ErrNoCandidates
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", domain.ErrNoCandidates
	}
	return content.Parts[0].Text, nil
}

// GenerateIllustration asks the image model for both text and image
// modalities and returns the bytes of the first inline image part. Later
// image parts in the same response are discarded. A response carrying no
// image data returns nil bytes without error; illustration is best-effort.
func (c *Client) GenerateIllustration(ctx context.Context, prompt string) ([]byte, string, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	resp, err := c.api.Models.GenerateContent(ctx, c.imageModel, genai.Text(prompt), config)
	if err != nil {
		return nil, "", fmt.Errorf("gemini: generate illustration: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return nil, "", nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, part.InlineData.MIMEType, nil
		}
	}
	return nil, "", nil
}
