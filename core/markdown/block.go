// Package markdown renders the prose fragments of a course page into
// Markdown. It recognizes a closed set of block kinds (paragraphs, code,
// lists, tables, blockquotes and transparent wrappers) and ignores
// everything else.
package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/hwscrape/core"
)

// MaxDepth bounds how deeply blockquotes and wrappers may nest, and
// separately how deeply lists may nest, before the converter stops
// descending.
const MaxDepth = 64

// responsiveTableClass marks the div that course pages wrap tables in.
const responsiveTableClass = "table-responsive"

// blockKind enumerates the block elements the converter understands.
type blockKind int

const (
	blockNone blockKind = iota
	blockParagraph
	blockCode
	blockList
	blockTable
	blockQuote
	blockWrapper
)

// wrapperTags are containers rendered as their content with no decoration.
var wrapperTags = map[string]bool{
	"solution": true,
	"aside":    true,
}

func kindOf(sel *goquery.Selection) blockKind {
	switch name := goquery.NodeName(sel); name {
	case "p":
		return blockParagraph
	case "pre":
		return blockCode
	case "ul", "ol":
		return blockList
	case "div":
		if sel.HasClass(responsiveTableClass) {
			return blockTable
		}
	case "blockquote":
		return blockQuote
	default:
		if wrapperTags[name] {
			return blockWrapper
		}
	}
	return blockNone
}

// Converter renders goquery selections into Markdown. It holds no state
// between calls, so one Converter can serve any number of pages.
type Converter struct {
	report core.Reporter
}

// New creates a Converter that sends structural diagnostics to report.
// A nil report discards them.
func New(report core.Reporter) *Converter {
	if report == nil {
		report = core.NopReporter{}
	}
	return &Converter{report: report}
}

// Block renders one block element. Unrecognized elements render to "".
func (c *Converter) Block(sel *goquery.Selection) string {
	return c.block(sel, 0)
}

// Content renders the direct element children of sel, skipping text nodes
// and empty results, separated by blank lines.
func (c *Converter) Content(sel *goquery.Selection) string {
	return c.content(sel, 0)
}

func (c *Converter) block(sel *goquery.Selection, depth int) string {
	switch kindOf(sel) {
	case blockParagraph:
		return c.Inline(sel)
	case blockCode:
		return renderCode(sel)
	case blockList:
		// List indentation counts list nesting only, not enclosing containers.
		return c.list(sel, 0)
	case blockTable:
		return c.responsiveTable(sel)
	case blockQuote:
		return c.quote(sel, depth)
	case blockWrapper:
		return c.content(sel, depth+1)
	default:
		return ""
	}
}

func (c *Converter) content(sel *goquery.Selection, depth int) string {
	if depth > MaxDepth {
		c.report.Warnf("content nested deeper than %d levels, skipping", MaxDepth)
		return ""
	}
	var parts []string
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		if out := c.block(child, depth); out != "" {
			parts = append(parts, out)
		}
	})
	return strings.Join(parts, "\n\n")
}

func renderCode(sel *goquery.Selection) string {
	return "```\n" + strings.TrimSpace(sel.Text()) + "\n```"
}

func (c *Converter) responsiveTable(sel *goquery.Selection) string {
	table := sel.Find("table").First()
	if table.Length() == 0 {
		c.report.Warnf("%s container has no table", responsiveTableClass)
		return ""
	}
	return c.Table(table)
}

// quote renders the blockquote's content and prefixes every line with "> ".
func (c *Converter) quote(sel *goquery.Selection, depth int) string {
	inner := c.content(sel, depth+1)
	if inner == "" {
		return ""
	}
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}
