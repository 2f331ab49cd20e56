package markdown

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// hardBreak marks a <br> until whitespace has been collapsed.
const hardBreak = "\x00"

// breakRun matches a break marker together with the single spaces that
// collapsing may have left on either side of it.
var breakRun = regexp.MustCompile(" ?\x00 ?")

// Inline renders an inline content region (text, emphasis, code spans and
// line breaks) into a single normalized Markdown string.
func (c *Converter) Inline(sel *goquery.Selection) string {
	return c.inline(sel, false)
}

// inline renders the children of every node in sel. With skipLists set,
// nested ul/ol elements are left out so list items only yield their own text.
func (c *Converter) inline(sel *goquery.Selection, skipLists bool) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeChildren(&b, n, skipLists)
	}
	return finishInline(b.String())
}

func writeChildren(b *strings.Builder, n *html.Node, skipLists bool) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		writeInline(b, child, skipLists)
	}
}

func writeInline(b *strings.Builder, n *html.Node, skipLists bool) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Code:
		b.WriteString("`")
		b.WriteString(textContent(n))
		b.WriteString("`")
	case atom.Strong, atom.B:
		b.WriteString("**")
		writeChildren(b, n, skipLists)
		b.WriteString("**")
	case atom.Em, atom.I:
		b.WriteString("*")
		writeChildren(b, n, skipLists)
		b.WriteString("*")
	case atom.Br:
		b.WriteString(hardBreak)
	case atom.Script, atom.Style, atom.Template:
	case atom.Ul, atom.Ol:
		if !skipLists {
			writeChildren(b, n, skipLists)
		}
	default:
		writeChildren(b, n, skipLists)
	}
}

// finishInline collapses whitespace, trims, then turns break markers into
// Markdown hard breaks so they survive the collapsing.
func finishInline(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, " "+hardBreak)
	return breakRun.ReplaceAllString(s, "  \n")
}

// textContent returns the literal text below n, without any rewriting.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(textContent(child))
	}
	return b.String()
}
