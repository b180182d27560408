package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/use-agent/linkextract/config"
	"github.com/use-agent/linkextract/fetcher"
	"github.com/use-agent/linkextract/models"
)

// TypeHint is an explicit strategy override supplied by the caller.
type TypeHint string

const (
	HintAuto      TypeHint = "auto"
	HintInstagram TypeHint = "instagram"
	HintWeb       TypeHint = "web"
)

// ParseTypeHint validates a --type value.
func ParseTypeHint(s string) (TypeHint, error) {
	switch TypeHint(s) {
	case HintAuto, HintInstagram, HintWeb:
		return TypeHint(s), nil
	case "":
		return HintAuto, nil
	}
	return "", models.NewExtractError(models.ErrCodeInvalidInput,
		fmt.Sprintf("unknown type %q (want auto, instagram or web)", s), nil)
}

// Dispatcher classifies an input URL and routes it to the right strategy.
type Dispatcher struct {
	fetcher   *fetcher.Fetcher
	instagram *Instagram
	bodyLimit int
}

// NewDispatcher wires the strategies around a shared Fetcher.
func NewDispatcher(f *fetcher.Fetcher, cfg config.ExtractConfig) *Dispatcher {
	return &Dispatcher{
		fetcher:   f,
		instagram: NewInstagram(f, cfg),
		bodyLimit: cfg.BodyTextLimit,
	}
}

// Dispatch extracts structured data from rawURL.
//
// Routing:
//  1. hint == instagram, or the URL is an Instagram post/reel → Instagram
//     strategy (embed page + oEmbed fallback).
//  2. hint == web → fetch and run generic extraction only.
//  3. auto → fetch once, try the Recipe strategy on the body; when no
//     recipe structured data is found, fall through to generic extraction
//     reusing the same body. No second network call is made.
//
// Malformed URLs fail with INVALID_URL before any network call.
func (d *Dispatcher) Dispatch(ctx context.Context, rawURL string, hint TypeHint) (models.ExtractionResult, error) {
	u, err := parseTargetURL(rawURL)
	if err != nil {
		return nil, err
	}

	if hint == HintInstagram || isInstagramPost(u) {
		return d.instagram.Extract(ctx, rawURL, u)
	}

	resp, err := d.fetcher.Get(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}

	if hint != HintWeb {
		if recipe := ExtractRecipe(resp.Body); recipe != nil {
			slog.Debug("recipe JSON-LD found", "url", rawURL)
			return &models.RecipeResult{
				Source: models.SourceSchemaOrg,
				Type:   "recipe",
				URL:    rawURL,
				Data:   recipe,
			}, nil
		}
		slog.Debug("no recipe JSON-LD, falling through to generic extraction", "url", rawURL)
	}

	return ExtractGeneric(resp.Body, rawURL, d.bodyLimit), nil
}

// parseTargetURL validates the input URL shape before any network call.
func parseTargetURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, models.NewExtractError(models.ErrCodeInvalidURL, fmt.Sprintf("malformed URL %q", rawURL), err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, models.NewExtractError(models.ErrCodeInvalidURL,
			fmt.Sprintf("URL %q must be absolute http(s)", rawURL), nil)
	}
	return u, nil
}

// isInstagramPost reports whether u points at an Instagram post or reel.
// Matching both host and path keeps profile pages and other Instagram URLs
// on the recipe→generic path.
func isInstagramPost(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host != "instagram.com" && host != "instagr.am" {
		return false
	}
	return shortcodeFromPath(u.Path) != ""
}
