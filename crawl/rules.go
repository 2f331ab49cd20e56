// Package crawl scans course sites for homework pages.
//
// A base URL carries a homework-number placeholder in Python format syntax
// ({}, {:d}, {:02d}) and an optional explicit course prefix.
package crawl

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidTemplate is returned for base URLs that cannot be expanded.
var ErrInvalidTemplate = errors.New("invalid base URL template")

// placeholder matches {}, {:d}, {:2d} and {:02d}.
var placeholder = regexp.MustCompile(`\{(?::(0?)(\d*)d)?\}`)

// courseHints map a substring of the URL to a course identifier.
var courseHints = []struct {
	needle string
	course string
}{
	{"cs61a", "61a"},
	{"c88c", "88c"},
}

// DefaultBaseURLs are scraped when no base URL is configured.
var DefaultBaseURLs = []string{
	"https://cs61a.org/hw/hw{:02d}/",
	"https://c88c.org/fa24/hw/hw{:02d}/",
}

// Source is one course site to scan.
type Source struct {
	Course   string
	Template string
}

// ParseSource parses "URL" or "course=URL". Without an explicit course the
// course is inferred from the URL.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	src := Source{Template: raw}

	if prefix, rest, ok := strings.Cut(raw, "="); ok && prefix != "" && !strings.ContainsAny(prefix, ":/?&") {
		src.Course = prefix
		src.Template = strings.TrimSpace(rest)
	}

	if !placeholder.MatchString(src.Template) {
		return Source{}, fmt.Errorf("%w: %q has no homework placeholder such as {:02d}", ErrInvalidTemplate, raw)
	}
	parsed, err := url.Parse(src.URL(1))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Source{}, fmt.Errorf("%w: %q (must include scheme, e.g. https://cs61a.org/hw/hw{:02d}/)", ErrInvalidTemplate, raw)
	}

	if src.Course == "" {
		src.Course = InferCourse(parsed)
	}
	return src, nil
}

// URL expands the first placeholder with the homework number.
func (s Source) URL(hw int) string {
	done := false
	return placeholder.ReplaceAllStringFunc(s.Template, func(m string) string {
		if done {
			return m
		}
		done = true

		sub := placeholder.FindStringSubmatch(m)
		width, _ := strconv.Atoi(sub[2])
		if sub[1] == "0" {
			return fmt.Sprintf("%0*d", width, hw)
		}
		return fmt.Sprintf("%*d", width, hw)
	})
}

// InferCourse guesses the course identifier from a page URL, falling back
// to the first label of the host name.
func InferCourse(u *url.URL) string {
	lower := strings.ToLower(u.String())
	for _, h := range courseHints {
		if strings.Contains(lower, h.needle) {
			return h.course
		}
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	label, _, _ := strings.Cut(host, ".")
	return label
}
