package story

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storygen/internal/domain"
	"storygen/internal/storage"
)

// ImageGenerator produces inline image bytes for a prompt. A nil byte slice
// without error means the model returned no image.
type ImageGenerator interface {
	GenerateIllustration(ctx context.Context, prompt string) (data []byte, mimeType string, err error)
}

// Illustrator generates one illustration per page unit and persists it to
// the image store. The page text is used verbatim as the prompt.
type Illustrator struct {
	client     ImageGenerator
	store      *storage.ImageStore
	publicPath string
	now        func() time.Time
}

// NewIllustrator constructs an Illustrator. publicPath is the URL prefix the
// stored files are served under, e.g. "/images".
func NewIllustrator(client ImageGenerator, store *storage.ImageStore, publicPath string) (*Illustrator, error) {
	if client == nil {
		return nil, errors.New("story: image generator is required")
	}
	if store == nil {
		return nil, errors.New("story: image store is required")
	}
	if publicPath == "" {
		publicPath = "/images"
	}
	return &Illustrator{
		client:     client,
		store:      store,
		publicPath: publicPath,
		now:        time.Now,
	}, nil
}

// Illustrate generates and stores an image for the unit, returning its
// public-relative path. An empty path with nil error means the model
// returned no image; that is not a failure.
func (il *Illustrator) Illustrate(ctx context.Context, unit domain.PageUnit) (string, error) {
	data, _, err := il.client.GenerateIllustration(ctx, unit.Text)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", nil
	}

	// Page index plus timestamp keeps concurrent requests from overwriting
	// each other's files.
	filename := fmt.Sprintf("page-%d-%d.png", unit.Index+1, il.now().UnixMilli())
	if _, err := il.store.Write(ctx, filename, data); err != nil {
		return "", err
	}
	return il.publicPath + "/" + filename, nil
}
