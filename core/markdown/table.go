package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table renders a table element as a pipe table. The first row with cells
// is taken as the header and followed by a separator sized to it. Rows
// without cells are dropped. Later rows of a different width are passed
// through unchanged and reported.
func (c *Converter) Table(sel *goquery.Selection) string {
	var lines []string
	width := 0

	sel.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, c.Inline(cell))
		})
		if len(cells) == 0 {
			return
		}
		header := len(lines) == 0
		lines = append(lines, pipeRow(cells))

		if header {
			width = len(cells)
			sep := make([]string, width)
			for j := range sep {
				sep[j] = "---"
			}
			lines = append(lines, pipeRow(sep))
			return
		}
		if len(cells) != width {
			c.report.Warnf("table row %d has %d cells, header has %d", i+1, len(cells), width)
		}
	})
	return strings.Join(lines, "\n")
}

func pipeRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}
