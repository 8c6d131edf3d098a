package story

import (
	"regexp"
	"strings"

	"storygen/internal/domain"
)

// Segmenter splits a raw narrative into ordered page units. It is an
// interface so the delimiter convention can be swapped without touching the
// pipeline.
type Segmenter interface {
	Split(narrative string) []domain.PageUnit
}

var pageMarker = regexp.MustCompile(`(?i)Page\s+\d+:?`)

// MarkerSegmenter splits on "Page N:" style markers, the convention the
// narrative prompt nudges the model toward. The marker text itself is
// discarded, as are empty and whitespace-only segments. Narratives without
// markers collapse into at most one unit.
type MarkerSegmenter struct{}

// Split implements Segmenter.
func (MarkerSegmenter) Split(narrative string) []domain.PageUnit {
	segments := pageMarker.Split(narrative, -1)
	units := make([]domain.PageUnit, 0, len(segments))
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		units = append(units, domain.PageUnit{Index: len(units), Text: seg})
	}
	return units
}
