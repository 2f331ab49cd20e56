package crawl

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/hwscrape/core"
	"github.com/gaurav-prasanna/hwscrape/core/extract"
	"github.com/gaurav-prasanna/hwscrape/core/fetch"
)

// DefaultConcurrency bounds parallel fetches within one round.
const DefaultConcurrency = 4

// ErrPageFault wraps an unexpected panic raised while scraping one page.
var ErrPageFault = errors.New("unexpected fault while scraping page")

// Config drives a scan. It is built by the CLI and never read from
// process state by the scanner itself.
type Config struct {
	Sources []Source
	// MaxHomework stops the scan after this homework number. Zero or less
	// scans until a full round of sources yields nothing.
	MaxHomework int
	Concurrency int
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New("at least one base URL is required")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative (got %d)", c.Concurrency)
	}
	return nil
}

// Page is the outcome of scraping one source for one homework number.
type Page struct {
	core.PageMetadata
	Sections []core.Section
	Err      error
}

// OK reports whether the page produced any sections.
func (p Page) OK() bool {
	return p.Err == nil && len(p.Sections) > 0
}

// Result aggregates a scan: every section in order, and every page tried.
type Result struct {
	Sections []core.Section
	Pages    []Page
}

// Scanner iterates homework numbers across all sources.
type Scanner struct {
	cfg     Config
	fetcher core.Fetcher
	seg     *extract.Segmenter
	report  core.Reporter
}

// NewScanner creates a Scanner. report may be nil.
func NewScanner(cfg Config, fetcher core.Fetcher, report core.Reporter) *Scanner {
	if report == nil {
		report = core.NopReporter{}
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &Scanner{
		cfg:     cfg,
		fetcher: fetcher,
		seg:     extract.NewSegmenter(report),
		report:  report,
	}
}

// Scan scrapes homework 1, 2, ... from every source. A round is one
// homework number across all sources; the scan ends after a round in which
// no page produced sections, or after MaxHomework. Sections are ordered by
// homework, then by source order, then by document order.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Sections: []core.Section{}}
	for hw := 1; s.cfg.MaxHomework <= 0 || hw <= s.cfg.MaxHomework; hw++ {
		anySucceeded := false
		for _, page := range s.round(ctx, hw) {
			res.Pages = append(res.Pages, page)
			switch {
			case page.OK():
				anySucceeded = true
				res.Sections = append(res.Sections, page.Sections...)
				s.report.Infof("Scraped HW %d from %s", hw, page.Course)
			case errors.Is(page.Err, fetch.ErrUnavailable):
				s.report.Warnf("HW %d from %s: %v", hw, page.Course, page.Err)
			case page.Err != nil:
				s.report.Errorf("Failed to scrape HW %d from %s: %v", hw, page.Course, page.Err)
			default:
				s.report.Warnf("HW %d from %s has no sections", hw, page.Course)
			}
		}

		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !anySucceeded {
			break
		}
	}
	return res, nil
}

// round scrapes one homework number from every source in parallel and
// returns the pages in source order.
func (s *Scanner) round(ctx context.Context, hw int) []Page {
	pages := make([]Page, len(s.cfg.Sources))

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i, src := range s.cfg.Sources {
		g.Go(func() error {
			pages[i] = s.scrapePage(ctx, src, hw)
			return nil
		})
	}
	// Workers report through pages and never fail, so Wait only joins them.
	_ = g.Wait()

	return pages
}

// scrapePage never panics: a fault on one page is turned into an error so
// the scan can move on.
func (s *Scanner) scrapePage(ctx context.Context, src Source, hw int) (page Page) {
	page = Page{PageMetadata: core.PageMetadata{URL: src.URL(hw), Course: src.Course, Homework: hw}}
	defer func() {
		if r := recover(); r != nil {
			page.Sections = nil
			page.Err = fmt.Errorf("%w %s: %v", ErrPageFault, page.URL, r)
		}
	}()

	fetched, err := s.fetcher.Fetch(ctx, page.URL)
	if err != nil {
		page.Err = err
		return page
	}

	sections, err := s.seg.SegmentHTML(fetched.HTML, src.Course, hw)
	if err != nil {
		page.Err = fmt.Errorf("segmenting %s: %w", page.URL, err)
		return page
	}
	page.Sections = sections
	return page
}
