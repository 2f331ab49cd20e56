// Package report writes diagnostics and scan summaries to the error stream.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Console is a core.Reporter that prints colored diagnostics. It is safe for
// concurrent use by the scanner's workers.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	quiet bool

	warn *color.Color
	err  *color.Color
	info *color.Color
}

// NewConsole creates a Console writing to w (os.Stderr when nil). With
// quiet set only errors are printed.
func NewConsole(w io.Writer, quiet bool) *Console {
	if w == nil {
		w = os.Stderr
	}
	return &Console{
		w:     w,
		quiet: quiet,
		warn:  color.New(color.FgYellow),
		err:   color.New(color.FgRed, color.Bold),
		info:  color.New(color.FgGreen),
	}
}

// Warnf reports a non-fatal anomaly.
func (c *Console) Warnf(format string, args ...any) {
	if c.quiet {
		return
	}
	c.print(c.warn, "Warning: ", format, args...)
}

// Errorf reports a failure that was skipped over.
func (c *Console) Errorf(format string, args ...any) {
	c.print(c.err, "✗ ", format, args...)
}

// Infof reports progress.
func (c *Console) Infof(format string, args ...any) {
	if c.quiet {
		return
	}
	c.print(c.info, "✓ ", format, args...)
}

func (c *Console) print(col *color.Color, prefix, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	col.Fprint(c.w, prefix)
	fmt.Fprintf(c.w, format+"\n", args...)
}

// PageRow is one line of the scan summary.
type PageRow struct {
	Course          string
	Homework        int
	URL             string
	Sections        int
	Questions       int
	MissingKeywords int
	Err             error
}

// Summary renders a table of scanned pages with a totals footer.
func Summary(w io.Writer, rows []PageRow) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Course", "HW", "Sections", "Questions", "No Keyword", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignLeft, WidthMax: 60},
	})

	var sections, questions, missing int
	for _, r := range rows {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}
		t.AppendRow(table.Row{r.Course, r.Homework, r.Sections, r.Questions, r.MissingKeywords, status})
		sections += r.Sections
		questions += r.Questions
		missing += r.MissingKeywords
	}
	t.AppendFooter(table.Row{"Total", strconv.Itoa(len(rows)) + " pages", sections, questions, missing, ""})
	t.Render()
}
