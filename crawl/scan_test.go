package crawl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/hwscrape/core"
	"github.com/gaurav-prasanna/hwscrape/core/fetch"
)

type recorder struct {
	mu     sync.Mutex
	infos  []string
	warns  []string
	errors []string
}

func (r *recorder) Warnf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}

func (r *recorder) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Infof(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func homeworkPage(title string) string {
	return `<html><body><main>
<h2>` + title + `</h2>
<p>Intro for ` + title + `.</p>
<h3>Q1: First</h3>
<pre><code>python3 ok -q first</code><button>Copy</button></pre>
</main></body></html>`
}

// newCourseServer serves 61a homework 1-2 and 88c homework 1. Homework 2 of
// 88c exists but has no headings.
func newCourseServer(t *testing.T) *httptest.Server {
	t.Helper()
	pages := map[string]string{
		"/61a/hw01/": homeworkPage("61A One"),
		"/61a/hw02/": homeworkPage("61A Two"),
		"/88c/hw01/": homeworkPage("88C One"),
		"/88c/hw02/": "<html><body><p>Coming soon</p></body></html>",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, page)
	}))
	t.Cleanup(server.Close)
	return server
}

func sources(t *testing.T, server *httptest.Server) []Source {
	t.Helper()
	var out []Source
	for _, raw := range []string{
		"61a=" + server.URL + "/61a/hw{:02d}/",
		"88c=" + server.URL + "/88c/hw{:02d}/",
	} {
		src, err := ParseSource(raw)
		require.NoError(t, err)
		out = append(out, src)
	}
	return out
}

func titles(sections []core.Section) []string {
	var out []string
	for _, s := range sections {
		out = append(out, fmt.Sprintf("%s/%d/%s", s.Course, s.Homework, s.Title))
	}
	return out
}

func TestScanner_Scan(t *testing.T) {
	server := newCourseServer(t)

	t.Run("Until Empty Round", func(t *testing.T) {
		rec := &recorder{}
		cfg := Config{Sources: sources(t, server), Concurrency: 2}
		res, err := NewScanner(cfg, fetch.New(nil), rec).Scan(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{
			"61a/1/61A One", "61a/1/First",
			"88c/1/88C One", "88c/1/First",
			"61a/2/61A Two", "61a/2/First",
		}, titles(res.Sections))

		// Three rounds of two sources; the third round finds nothing.
		require.Len(t, res.Pages, 6)
		assert.True(t, res.Pages[0].OK())
		assert.True(t, res.Pages[2].OK())
		assert.False(t, res.Pages[3].OK())
		assert.NoError(t, res.Pages[3].Err)
		assert.ErrorIs(t, res.Pages[4].Err, fetch.ErrUnavailable)
		assert.Equal(t, server.URL+"/88c/hw03/", res.Pages[5].URL)

		assert.Equal(t, []string{
			"Scraped HW 1 from 61a",
			"Scraped HW 1 from 88c",
			"Scraped HW 2 from 61a",
		}, rec.infos)
		assert.Empty(t, rec.errors)
	})

	t.Run("Max Homework", func(t *testing.T) {
		cfg := Config{Sources: sources(t, server), MaxHomework: 1}
		res, err := NewScanner(cfg, fetch.New(nil), nil).Scan(context.Background())
		require.NoError(t, err)
		assert.Len(t, res.Pages, 2)
		assert.Len(t, res.Sections, 4)
	})

	t.Run("Question Fields", func(t *testing.T) {
		cfg := Config{Sources: sources(t, server)[:1], MaxHomework: 1}
		res, err := NewScanner(cfg, fetch.New(nil), nil).Scan(context.Background())
		require.NoError(t, err)
		require.Len(t, res.Sections, 2)

		q := res.Sections[1]
		assert.True(t, q.IsQuestion())
		require.NotNil(t, q.Number)
		assert.Equal(t, 1, *q.Number)
		assert.Equal(t, "first", q.Keyword)
	})

	t.Run("Nothing Found", func(t *testing.T) {
		src, err := ParseSource(server.URL + "/missing/hw{:02d}/")
		require.NoError(t, err)
		res, err := NewScanner(Config{Sources: []Source{src}}, fetch.New(nil), nil).Scan(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, res.Sections)
		assert.Empty(t, res.Sections)
		assert.Len(t, res.Pages, 1)
	})
}

type panicFetcher struct{}

func (panicFetcher) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	if strings.Contains(url, "bad") {
		panic("malformed page")
	}
	return &core.FetchResult{URL: url, StatusCode: http.StatusOK, HTML: homeworkPage("Good")}, nil
}

func TestScanner_PageFault(t *testing.T) {
	rec := &recorder{}
	cfg := Config{
		Sources: []Source{
			{Course: "bad", Template: "https://bad.example.org/hw{:02d}"},
			{Course: "good", Template: "https://good.example.org/hw{:02d}"},
		},
		MaxHomework: 2,
	}
	res, err := NewScanner(cfg, panicFetcher{}, rec).Scan(context.Background())
	require.NoError(t, err)

	assert.Len(t, res.Sections, 4)
	assert.ErrorIs(t, res.Pages[0].Err, ErrPageFault)
	require.Len(t, rec.errors, 2)
	assert.Contains(t, rec.errors[0], "Failed to scrape HW 1 from bad")
}

func TestScanner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{Sources: []Source{{Course: "61a", Template: "https://cs61a.org/hw/hw{:02d}/"}}}
	res, err := NewScanner(cfg, fetch.New(nil), nil).Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Empty(t, res.Sections)
}

func TestConfig_Validate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{Sources: []Source{{}}, Concurrency: -1}.Validate())
	assert.NoError(t, Config{Sources: []Source{{}}}.Validate())
}
