// Package extract turns a parsed course page into structured content: the
// Segmenter splits it into question and preface sections, and the
// ContentExtractor isolates the page body for a full-page preview.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageChrome lists elements of a course page that never hold homework
// content: site navigation, the footer, scripts and interactive widgets.
var pageChrome = []string{
	"script", "style", "noscript",
	"nav", "header", "footer",
	"iframe", "svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".navbar", ".toc",
}

// contentContainers are tried in order; the first match is the page body.
var contentContainers = []string{"main", "article", ".inner-content", "body"}

// ContentExtractor strips page chrome and returns the main content fragment.
type ContentExtractor struct{}

// NewContentExtractor creates a ContentExtractor.
func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// Extract takes raw page HTML and returns the HTML of its main content
// container with navigation, footer and widgets removed.
func (e *ContentExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range pageChrome {
		doc.Find(sel).Remove()
	}

	for _, container := range contentContainers {
		if sel := doc.Find(container).First(); sel.Length() > 0 {
			out, err := goquery.OuterHtml(sel)
			if err != nil {
				return "", fmt.Errorf("serializing %s: %w", container, err)
			}
			return out, nil
		}
	}
	return "", fmt.Errorf("no content container found in HTML")
}
