// Scrape command.
// Orchestrates the scan: build config, fetch every homework round, segment
// each page, render the aggregated sections and write them out.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/hwscrape/core"
	"github.com/gaurav-prasanna/hwscrape/core/chunk"
	"github.com/gaurav-prasanna/hwscrape/core/fetch"
	"github.com/gaurav-prasanna/hwscrape/core/output"
	"github.com/gaurav-prasanna/hwscrape/core/render"
	"github.com/gaurav-prasanna/hwscrape/core/report"
	"github.com/gaurav-prasanna/hwscrape/crawl"
)

// scrapeFlags maps command-line flags to their viper keys.
var scrapeFlags = map[string]string{
	"base-urls":   "base_urls",
	"num-hw":      "num_hw",
	"format":      "format",
	"output":      "output",
	"concurrency": "concurrency",
	"summary":     "summary",
	"model":       "model",
	"chunk-size":  "chunk_size",
	"embed-url":   "embed_url",
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape homework pages into sections",
	Long: `Scrape fetches homework 1, 2, ... from every base URL, splits each page into
sections and writes them as one JSON array. The scan stops after a homework
number that no base URL serves, or after --num-hw.

A base URL contains a homework-number placeholder ({:02d}, {:d} or {}) and may
be prefixed with an explicit course, as in 61a=https://example.org/hw{:02d}/.

Examples:
  hwscrape scrape > sections.json
  hwscrape scrape --num-hw 4 --format markdown -o ./out/
  hwscrape scrape --base-urls "https://cs61a.org/hw/hw{:02d}/" --cookie session=abc
  hwscrape scrape --format pdf -o handout.pdf --summary
  hwscrape scrape --format embeddings --model nomic-embed-text -o ./out/`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	flags := scrapeCmd.Flags()
	flags.StringSlice("base-urls", crawl.DefaultBaseURLs, "Homework URL templates, optionally as course=URL")
	flags.Int("num-hw", -1, "Highest homework number to scrape (<=0: until a homework is missing everywhere)")
	flags.String("format", "json", "Output format: json, markdown, pdf or embeddings")
	flags.StringP("output", "o", "", "Output file or directory (default: stdout)")
	flags.Int("concurrency", crawl.DefaultConcurrency, "Parallel fetches per homework round")
	flags.Bool("summary", false, "Print a per-page summary table to stderr")

	// Embedding-specific flags.
	flags.String("model", "", "Embedding model (required with --format embeddings)")
	flags.Int("chunk-size", chunk.DefaultChunkSize, "Words per embedded chunk")
	flags.String("embed-url", render.DefaultEmbeddingsURL, "Ollama-compatible embeddings endpoint")

	for flag, key := range scrapeFlags {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(
		viper.GetStringSlice("base_urls"),
		viper.GetInt("num_hw"),
		viper.GetInt("concurrency"),
	)
	if err != nil {
		return err
	}

	renderer, err := selectRenderer(
		viper.GetString("format"),
		viper.GetString("model"),
		viper.GetInt("chunk_size"),
		viper.GetString("embed_url"),
	)
	if err != nil {
		return err
	}

	dest := viper.GetString("output")
	if renderer.Extension() == ".pdf" && (dest == "" || dest == "-") {
		return fmt.Errorf("--format pdf requires --output")
	}

	cookie, err := fetch.ParseCookie(viper.GetString("cookie"))
	if err != nil {
		return err
	}

	reporter := report.NewConsole(os.Stderr, viper.GetBool("quiet"))
	res, err := crawl.NewScanner(cfg, fetch.New(cookie), reporter).Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	if viper.GetBool("summary") {
		report.Summary(os.Stderr, pageRows(res.Pages))
	}

	data, err := renderer.Render(res.Sections)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	where, err := output.New(cmd.OutOrStdout()).Write(dest, data, renderer.Extension())
	if err != nil {
		return err
	}
	if where != "stdout" {
		reporter.Infof("Written: %s (%d sections)", where, len(res.Sections))
	}
	return nil
}

// buildConfig parses the base URL templates into a crawl.Config.
func buildConfig(baseURLs []string, numHW, concurrency int) (crawl.Config, error) {
	cfg := crawl.Config{
		MaxHomework: numHW,
		Concurrency: concurrency,
	}
	for _, raw := range baseURLs {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		src, err := crawl.ParseSource(raw)
		if err != nil {
			return crawl.Config{}, err
		}
		cfg.Sources = append(cfg.Sources, src)
	}
	if err := cfg.Validate(); err != nil {
		return crawl.Config{}, err
	}
	return cfg, nil
}

// selectRenderer creates the Renderer for the --format value. The model,
// chunk size and endpoint only apply to embeddings.
func selectRenderer(format, model string, chunkSize int, endpoint string) (core.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return render.NewJSONRenderer(), nil
	case "markdown", "md":
		return render.NewMarkdownRenderer(), nil
	case "pdf":
		return render.NewPDFRenderer(), nil
	case "embeddings":
		if model == "" {
			return nil, fmt.Errorf("--model is required when using --format embeddings")
		}
		return render.NewEmbeddingsRenderer(model, chunkSize, endpoint), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json, markdown, pdf or embeddings)", format)
	}
}

// pageRows summarizes scanned pages for the --summary table.
func pageRows(pages []crawl.Page) []report.PageRow {
	rows := make([]report.PageRow, 0, len(pages))
	for _, p := range pages {
		row := report.PageRow{
			Course:   p.Course,
			Homework: p.Homework,
			URL:      p.URL,
			Sections: len(p.Sections),
			Err:      p.Err,
		}
		for _, s := range p.Sections {
			if !s.IsQuestion() {
				continue
			}
			row.Questions++
			if s.Keyword == "" {
				row.MissingKeywords++
			}
		}
		rows = append(rows, row)
	}
	return rows
}
