package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/use-agent/linkextract/extractor"
	"github.com/use-agent/linkextract/fetcher"
	"github.com/use-agent/linkextract/models"
)

var (
	extractType   string
	extractPretty bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Extract structured data from a URL",
	Long:  "Fetches the URL and writes one JSON document to stdout. Instagram post/reel URLs are scraped via the embed page; other pages are checked for schema.org/Recipe JSON-LD before degrading to generic metadata extraction.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractType, "type", "auto", "force extraction type: auto, instagram or web")
	extractCmd.Flags().BoolVar(&extractPretty, "pretty", false, "pretty-print the JSON output")
}

func runExtract(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	hint, err := extractor.ParseTypeHint(extractType)
	if err != nil {
		return fail(rawURL, err)
	}

	f := fetcher.New(cfg.Fetch)
	d := extractor.NewDispatcher(f, cfg.Extract)

	result, err := d.Dispatch(context.Background(), rawURL, hint)
	if err != nil {
		return fail(rawURL, err)
	}

	return writeJSON(result, extractPretty)
}

// fail writes the uniform error document to stdout and propagates the error
// so the process exits non-zero. Stdout never carries partial JSON: either
// one result document or one error document.
func fail(url string, err error) error {
	_ = writeJSON(models.NewErrorResult(url, err), extractPretty)
	return err
}

// writeJSON encodes v to stdout. HTML escaping is disabled so URLs and
// captions round-trip unmangled.
func writeJSON(v any, pretty bool) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
