// Package render provides output renderers for scraped sections.
// This file implements the Markdown handout renderer, which the PDF
// renderer also paints from.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/hwscrape/core"
)

// MarkdownRenderer writes the sections as one Markdown document with a
// top-level heading per course homework.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the handout Markdown as bytes.
func (r *MarkdownRenderer) Render(sections []core.Section) ([]byte, error) {
	return []byte(handout(sections)), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func handout(sections []core.Section) string {
	var b strings.Builder
	var page string

	for _, s := range sections {
		if key := fmt.Sprintf("%s/%d", s.Course, s.Homework); key != page {
			if page != "" {
				b.WriteString("\n")
			}
			page = key
			fmt.Fprintf(&b, "# %s Homework %d\n\n", strings.ToUpper(s.Course), s.Homework)
		}

		fmt.Fprintf(&b, "## %s\n\n", sectionHeading(s))
		if s.Keyword != "" {
			fmt.Fprintf(&b, "*okpy: `%s`*\n\n", s.Keyword)
		}
		if s.Body != "" {
			b.WriteString(s.Body)
			b.WriteString("\n\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func sectionHeading(s core.Section) string {
	if s.IsQuestion() && s.Number != nil {
		return fmt.Sprintf("Q%d: %s", *s.Number, s.Title)
	}
	return s.Title
}
