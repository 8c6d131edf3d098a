package story

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storygen/internal/domain"
	"storygen/internal/storage"
)

type fakeTextGenerator struct {
	narrative string
	err       error
}

func (f *fakeTextGenerator) GenerateNarrative(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.narrative, nil
}

type fakeImageGenerator struct {
	mu      sync.Mutex
	prompts []string
	data    func(prompt string) []byte
	err     error
}

func (f *fakeImageGenerator) GenerateIllustration(ctx context.Context, prompt string) ([]byte, string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.err != nil {
		return nil, "", f.err
	}
	if f.data == nil {
		return nil, "", nil
	}
	return f.data(prompt), "image/png", nil
}

func newTestPipeline(t *testing.T, text *fakeTextGenerator, image *fakeImageGenerator) (*Pipeline, *storage.ImageStore) {
	t.Helper()
	store, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)

	narrative, err := NewNarrativeGenerator(text)
	require.NoError(t, err)
	illustrator, err := NewIllustrator(image, store, "/images")
	require.NoError(t, err)

	p, err := NewPipeline(narrative, MarkerSegmenter{}, illustrator, 2, zerolog.Nop())
	require.NoError(t, err)
	return p, store
}

func TestGenerateProducesOnePagePerMarker(t *testing.T) {
	text := &fakeTextGenerator{narrative: "Page 1: alpha\nPage 2: beta\nPage 3: gamma"}
	image := &fakeImageGenerator{data: func(string) []byte { return []byte("png") }}
	p, _ := newTestPipeline(t, text, image)

	result, err := p.Generate(context.Background(), "a premise")
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, "alpha", result[0].Text)
	assert.Equal(t, "beta", result[1].Text)
	assert.Equal(t, "gamma", result[2].Text)
	for i, page := range result {
		assert.True(t, strings.HasPrefix(page.Image, "/images/page-"), "page %d image = %q", i, page.Image)
		assert.Equal(t, page.Text, strings.TrimSpace(page.Text))
	}
}

func TestGenerateUsesRawPageTextAsPrompt(t *testing.T) {
	text := &fakeTextGenerator{narrative: "Page 1:  padded text  "}
	image := &fakeImageGenerator{}
	p, _ := newTestPipeline(t, text, image)

	result, err := p.Generate(context.Background(), "a premise")
	require.NoError(t, err)
	require.Len(t, result, 1)

	// Prompt keeps the raw segment; the response text is trimmed.
	require.Len(t, image.prompts, 1)
	assert.Equal(t, "  padded text  ", image.prompts[0])
	assert.Equal(t, "padded text", result[0].Text)
}

func TestGenerateEmptyNarrativeYieldsEmptyResult(t *testing.T) {
	text := &fakeTextGenerator{narrative: "no markers anywhere, just whitespace free prose"}
	image := &fakeImageGenerator{data: func(string) []byte { return []byte("png") }}
	p, _ := newTestPipeline(t, text, image)

	// One unit: the whole narrative.
	result, err := p.Generate(context.Background(), "a premise")
	require.NoError(t, err)
	assert.Len(t, result, 1)

	text.narrative = "   "
	result, err = p.Generate(context.Background(), "a premise")
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestGenerateMissingImageIsNotAnError(t *testing.T) {
	text := &fakeTextGenerator{narrative: "Page 1: alpha\nPage 2: beta"}
	image := &fakeImageGenerator{} // never returns image bytes
	p, store := newTestPipeline(t, text, image)

	result, err := p.Generate(context.Background(), "a premise")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "", result[0].Image)
	assert.Equal(t, "", result[1].Image)

	entries, err := os.ReadDir(store.BasePath())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateNarrativeFailureWritesNoFiles(t *testing.T) {
	text := &fakeTextGenerator{err: domain.ErrNoCandidates}
	image := &fakeImageGenerator{data: func(string) []byte { return []byte("png") }}
	p, store := newTestPipeline(t, text, image)

	_, err := p.Generate(context.Background(), "a premise")
	require.ErrorIs(t, err, domain.ErrNoCandidates)

	entries, err := os.ReadDir(store.BasePath())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, image.prompts)
}

func TestGenerateIllustrationFailureFailsWholeCall(t *testing.T) {
	text := &fakeTextGenerator{narrative: "Page 1: alpha\nPage 2: beta"}
	image := &fakeImageGenerator{err: errors.New("network down")}
	p, _ := newTestPipeline(t, text, image)

	result, err := p.Generate(context.Background(), "a premise")
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestGenerateRejectsEmptyPremise(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeTextGenerator{narrative: "Page 1: x"}, &fakeImageGenerator{})
	_, err := p.Generate(context.Background(), "   ")
	require.Error(t, err)
}

func TestIllustrateFilenamesAreUniqueAcrossTimestamps(t *testing.T) {
	store, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)
	image := &fakeImageGenerator{data: func(string) []byte { return []byte("png") }}
	illustrator, err := NewIllustrator(image, store, "/images")
	require.NoError(t, err)

	base := time.Now()
	illustrator.now = func() time.Time { return base }
	first, err := illustrator.Illustrate(context.Background(), domain.PageUnit{Index: 0, Text: "same text"})
	require.NoError(t, err)

	illustrator.now = func() time.Time { return base.Add(time.Millisecond) }
	second, err := illustrator.Illustrate(context.Background(), domain.PageUnit{Index: 0, Text: "same text"})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	entries, err := os.ReadDir(store.BasePath())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
