package story

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"storygen/internal/domain"
	"storygen/internal/infra"
)

// DefaultIllustrateLimit bounds how many illustration calls run at once for
// a single request.
const DefaultIllustrateLimit = 2

// Pipeline sequences narrative generation, page splitting and per-page
// illustration into the final story result.
type Pipeline struct {
	narrative   *NarrativeGenerator
	segmenter   Segmenter
	illustrator *Illustrator
	limit       int
	limiter     *rate.Limiter
	logger      infra.Logger
}

// NewPipeline constructs a Pipeline. limit bounds illustration concurrency;
// values below one fall back to DefaultIllustrateLimit.
func NewPipeline(narrative *NarrativeGenerator, segmenter Segmenter, illustrator *Illustrator, limit int, logger infra.Logger) (*Pipeline, error) {
	if narrative == nil {
		return nil, errors.New("story: narrative generator is required")
	}
	if segmenter == nil {
		return nil, errors.New("story: segmenter is required")
	}
	if illustrator == nil {
		return nil, errors.New("story: illustrator is required")
	}
	if limit < 1 {
		limit = DefaultIllustrateLimit
	}
	return &Pipeline{
		narrative:   narrative,
		segmenter:   segmenter,
		illustrator: illustrator,
		limit:       limit,
		limiter:     rate.NewLimiter(rate.Every(time.Second), limit),
		logger:      logger,
	}, nil
}

// Generate produces the illustrated story for a premise. Any narrative or
// illustration failure fails the whole call; no partial results are
// returned. A narrative without page markers yields an empty result, not an
// error.
func (p *Pipeline) Generate(ctx context.Context, premise string) (domain.StoryResult, error) {
	narrative, err := p.narrative.Generate(ctx, premise)
	if err != nil {
		return nil, err
	}

	units := p.segmenter.Split(narrative)
	if len(units) == 0 {
		p.logger.Warn().Msg("narrative contained no page markers")
		return domain.StoryResult{}, nil
	}

	// Illustration calls are independent, so they fan out under a bounded
	// group; each result lands in its index slot so final ordering always
	// matches marker order.
	pages := make(domain.StoryResult, len(units))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.limit)

	for _, unit := range units {
		unit := unit
		eg.Go(func() error {
			if err := p.limiter.Wait(egCtx); err != nil {
				return err
			}
			imagePath, err := p.illustrator.Illustrate(egCtx, unit)
			if err != nil {
				p.logger.Error().Err(err).Int("page", unit.Index+1).Msg("illustration failed")
				return err
			}
			pages[unit.Index] = domain.IllustratedPage{
				Text:  strings.TrimSpace(unit.Text),
				Image: imagePath,
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	p.logger.Info().Int("pages", len(pages)).Msg("story generated")
	return pages, nil
}
