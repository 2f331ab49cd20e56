package markdown

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const listIndent = "    "

// List renders a ul/ol element as Markdown list syntax at the given nesting
// depth. Ordered items are numbered by position, ignoring start/value
// attributes in the source.
func (c *Converter) List(sel *goquery.Selection, depth int) string {
	return c.list(sel, depth)
}

func (c *Converter) list(sel *goquery.Selection, depth int) string {
	if depth > MaxDepth {
		c.report.Warnf("list nested deeper than %d levels, skipping", MaxDepth)
		return ""
	}
	ordered := goquery.NodeName(sel) == "ol"
	indent := strings.Repeat(listIndent, depth)

	var items []string
	sel.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		prefix := "- "
		if ordered {
			prefix = strconv.Itoa(i+1) + ". "
		}
		item := indent + prefix + c.inline(li, true)

		nestedLists(li).Each(func(_ int, sub *goquery.Selection) {
			if nested := c.list(sub, depth+1); nested != "" {
				item += "\n" + nested
			}
		})
		items = append(items, item)
	})
	return strings.Join(items, "\n")
}

// nestedLists returns the outermost ul/ol elements inside li. Lists nested
// within those belong to deeper levels and are reached by recursion.
func nestedLists(li *goquery.Selection) *goquery.Selection {
	return li.Find("ul, ol").FilterFunction(func(_ int, sub *goquery.Selection) bool {
		return sub.ParentsUntilSelection(li).Filter("ul, ol").Length() == 0
	})
}
