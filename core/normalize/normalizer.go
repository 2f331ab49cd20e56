// Package normalize converts a whole page fragment into Markdown with
// html-to-markdown. It backs the full-page preview, which is compared
// against the section-by-section output of the segmenter.
package normalize

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// PageNormalizer converts HTML to Markdown using html-to-markdown.
type PageNormalizer struct {
	conv *converter.Converter
}

// New creates a PageNormalizer with the commonmark and table plugins.
func New() *PageNormalizer {
	return &PageNormalizer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Normalize converts an HTML fragment into Markdown. Relative links are
// resolved against pageURL when it is not empty.
func (n *PageNormalizer) Normalize(html, pageURL string) (string, error) {
	var opts []converter.ConvertOptionFunc
	if pageURL != "" {
		opts = append(opts, converter.WithDomain(pageURL))
	}
	markdown, err := n.conv.ConvertString(html, opts...)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
