package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/use-agent/linkextract/cleaner"
	"github.com/use-agent/linkextract/fetcher"
	"github.com/use-agent/linkextract/models"
)

var (
	cleanFormat   string
	cleanMode     string
	cleanSelector string
	cleanPretty   bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <url>",
	Short: "Fetch a page and emit its readable content",
	Long:  "Fetches the URL, isolates the main content with the Readability algorithm and writes one JSON document with the cleaned content (markdown, html or text), page metadata and token estimates.",
	Args:  cobra.ExactArgs(1),
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().StringVar(&cleanFormat, "format", "markdown", "output format: markdown, html or text")
	cleanCmd.Flags().StringVar(&cleanMode, "mode", "readability", "extraction mode: readability or raw")
	cleanCmd.Flags().StringVar(&cleanSelector, "selector", "", "CSS selector to narrow the page before cleaning")
	cleanCmd.Flags().BoolVar(&cleanPretty, "pretty", false, "pretty-print the JSON output")
}

func runClean(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	f := fetcher.New(cfg.Fetch)
	page, err := f.Get(context.Background(), rawURL, nil)
	if err != nil {
		_ = writeJSON(models.NewErrorResult(rawURL, err), cleanPretty)
		return err
	}

	cl := cleaner.NewCleaner()
	resp, err := cl.Clean(page.Body, rawURL, cleanFormat, cleanMode, cleaner.CleanOptions{
		CSSSelector: cleanSelector,
	})
	if err != nil {
		_ = writeJSON(models.NewErrorResult(rawURL, err), cleanPretty)
		return err
	}

	resp.StatusCode = page.StatusCode
	return writeJSON(resp, cleanPretty)
}
