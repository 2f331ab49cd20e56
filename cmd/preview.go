package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/hwscrape/core/extract"
	"github.com/gaurav-prasanna/hwscrape/core/fetch"
	"github.com/gaurav-prasanna/hwscrape/core/normalize"
)

var previewCmd = &cobra.Command{
	Use:   "preview <url>",
	Short: "Print one page's main content as Markdown",
	Long: `Preview fetches a single page, strips navigation and the footer, and prints
the remaining content converted to Markdown. Useful for checking what the
section scraper sees on a new course site.

Example:
  hwscrape preview https://cs61a.org/hw/hw02/`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	rawURL := args[0]
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://cs61a.org/hw/hw01/)", rawURL)
	}

	cookie, err := fetch.ParseCookie(viper.GetString("cookie"))
	if err != nil {
		return err
	}

	result, err := fetch.New(cookie).Fetch(cmd.Context(), rawURL)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	content, err := extract.NewContentExtractor().Extract(result.HTML)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	markdown, err := normalize.New().Normalize(content, rawURL)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), markdown)
	return nil
}
