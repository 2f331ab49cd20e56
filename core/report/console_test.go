package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/gaurav-prasanna/hwscrape/core"
)

var _ core.Reporter = (*Console)(nil)

func TestConsole(t *testing.T) {
	color.NoColor = true

	t.Run("Levels", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewConsole(&buf, false)
		c.Infof("Scraped HW %d from %s", 1, "61a")
		c.Warnf("No okpy question keyword found for HW %d question %d", 1, 3)
		c.Errorf("Failed to scrape HW %d", 2)

		assert.Equal(t,
			"✓ Scraped HW 1 from 61a\n"+
				"Warning: No okpy question keyword found for HW 1 question 3\n"+
				"✗ Failed to scrape HW 2\n",
			buf.String())
	})

	t.Run("Quiet Keeps Errors", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewConsole(&buf, true)
		c.Infof("progress")
		c.Warnf("warning")
		c.Errorf("boom")
		assert.Equal(t, "✗ boom\n", buf.String())
	})
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, []PageRow{
		{Course: "61a", Homework: 1, Sections: 6, Questions: 4, MissingKeywords: 1},
		{Course: "88c", Homework: 1, Err: errors.New("page unavailable")},
	})

	out := strings.ToUpper(buf.String())
	assert.Contains(t, out, "COURSE")
	assert.Contains(t, out, "61A")
	assert.Contains(t, out, "PAGE UNAVAILABLE")
	assert.Contains(t, out, "2 PAGES")
}
