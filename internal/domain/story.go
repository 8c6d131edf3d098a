package domain

// PageUnit is a single segment of generated narrative text, delimited by a
// page marker. Index reflects appearance order in the source narrative.
type PageUnit struct {
	Index int
	Text  string
}

// IllustratedPage pairs a page's trimmed text with an optional image
// reference. Image is a public-relative URL path, or empty when the
// illustration call returned no inline image data.
type IllustratedPage struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// StoryResult is the ordered set of illustrated pages returned to the caller.
type StoryResult []IllustratedPage
