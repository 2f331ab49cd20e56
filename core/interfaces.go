// Package core defines the pipeline types and interfaces for hwscrape.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
	RequestID  string
}

// Kind classifies a section by its heading.
type Kind string

const (
	// KindPreface is a section whose heading is not a numbered question.
	KindPreface Kind = "preface"
	// KindQuestion is a section whose heading reads "Q<n>: <title>".
	KindQuestion Kind = "question"
)

// Section is one heading of a homework page plus its rendered content.
// The JSON keys match what the downstream help bot reads.
type Section struct {
	Course   string `json:"course"`
	Homework int    `json:"hw"`
	Kind     Kind   `json:"type"`
	Number   *int   `json:"number,omitempty"`
	Title    string `json:"title"`
	Body     string `json:"text"`
	Keyword  string `json:"okpy_q,omitempty"`
}

// IsQuestion reports whether the section is a numbered question.
func (s Section) IsQuestion() bool {
	return s.Kind == KindQuestion
}

// PageMetadata identifies the page a batch of sections was scraped from.
type PageMetadata struct {
	URL      string `json:"url"`
	Course   string `json:"course"`
	Homework int    `json:"hw"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Reporter receives non-fatal diagnostics. Implementations must be safe for
// concurrent use.
type Reporter interface {
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Infof(format string, args ...any)
}

// Renderer converts the aggregated sections into a final output format.
type Renderer interface {
	Render(sections []Section) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// NopReporter discards every diagnostic.
type NopReporter struct{}

func (NopReporter) Warnf(string, ...any)  {}
func (NopReporter) Errorf(string, ...any) {}
func (NopReporter) Infof(string, ...any)  {}
