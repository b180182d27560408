// Command linkextract fetches a URL and extracts structured data from it:
// Instagram posts via the embed-page trick, recipe blogs via schema.org
// JSON-LD, and anything else via generic page metadata. One invocation
// writes one JSON document to stdout.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/use-agent/linkextract/config"
)

const version = "0.1.0"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "linkextract",
	Short:         "Extract structured data from URLs",
	Long:          "linkextract fetches a URL and emits one JSON document: Instagram post metadata, schema.org/Recipe structured data, or generic page metadata with visible body text.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		initLogger(cfg.Log)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd, cleanCmd, serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initLogger configures slog based on the LogConfig. Logs always go to
// stderr: stdout is reserved for result JSON.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
