package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/hwscrape/core"
	"github.com/gaurav-prasanna/hwscrape/core/markdown"
)

// Heading and keyword patterns. Both are part of the output contract: the
// capture groups are pinned by tests and must not drift.
var (
	// QuestionPattern matches a question heading "Q<n>: <title>".
	// Group 1 is the number, group 2 the raw title.
	QuestionPattern = regexp.MustCompile(`(?s)^Q(\d+):(.*)$`)

	// KeywordPattern matches the okpy invocation shown in a question body,
	// directly followed by the copy button label. Group 1 is the keyword.
	KeywordPattern = regexp.MustCompile(`python3 ok -q ([\w-]+)Copy`)
)

const (
	headingSelector = "h1, h2, h3"
	footerSelector  = "footer"
)

// Segmenter partitions a homework page into heading-delimited sections.
type Segmenter struct {
	conv   *markdown.Converter
	report core.Reporter
}

// NewSegmenter creates a Segmenter. Diagnostics (missing keywords, odd
// tables) go to report; a nil report discards them.
func NewSegmenter(report core.Reporter) *Segmenter {
	if report == nil {
		report = core.NopReporter{}
	}
	return &Segmenter{
		conv:   markdown.New(report),
		report: report,
	}
}

// SegmentHTML parses raw markup and segments it.
func (s *Segmenter) SegmentHTML(html, course string, hw int) ([]core.Section, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return s.Segment(doc, course, hw), nil
}

// Segment returns one section per h1/h2/h3 heading outside the page footer,
// in document order. A page without headings yields an empty slice.
func (s *Segmenter) Segment(doc *goquery.Document, course string, hw int) []core.Section {
	sections := []core.Section{}

	doc.Find(headingSelector).
		FilterFunction(func(_ int, h *goquery.Selection) bool {
			return h.Closest(footerSelector).Length() == 0
		}).
		Each(func(_ int, h *goquery.Selection) {
			sections = append(sections, s.section(h, course, hw))
		})

	return sections
}

func (s *Segmenter) section(h *goquery.Selection, course string, hw int) core.Section {
	sec := classify(s.conv.Inline(h))
	sec.Course = course
	sec.Homework = hw
	sec.Body = s.body(h)

	if m := KeywordPattern.FindStringSubmatch(sec.Body); m != nil {
		sec.Keyword = m[1]
	} else if sec.IsQuestion() {
		s.report.Warnf("No okpy question keyword found for HW %d question %d (%s)", hw, *sec.Number, course)
	}
	return sec
}

// body renders the element siblings after h up to the next h1/h2/h3.
func (s *Segmenter) body(h *goquery.Selection) string {
	var parts []string
	for sib := h.Next(); sib.Length() > 0; sib = sib.Next() {
		if sib.Is(headingSelector) {
			break
		}
		if out := s.conv.Block(sib); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n\n")
}

// classify derives kind, number and title from normalized heading text.
// Anything that does not parse as a question, including "Q" followed by
// non-digits or an out-of-range number, is a preface.
func classify(heading string) core.Section {
	if m := QuestionPattern.FindStringSubmatch(heading); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return core.Section{
				Kind:   core.KindQuestion,
				Number: &n,
				Title:  strings.TrimSpace(m[2]),
			}
		}
	}
	return core.Section{
		Kind:  core.KindPreface,
		Title: heading,
	}
}
