// Package cleaner turns raw page HTML into readable content: a readability
// stage isolating the main body, followed by conversion to markdown, html
// or plain text. It also houses the low-level text helpers the extractors
// share (visible-text stripping, truncation, token estimates).
package cleaner

import (
	"log/slog"
	"math"
	nurl "net/url"

	readability "github.com/go-shiori/go-readability"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/use-agent/linkextract/models"
)

// Cleaner orchestrates the two-stage cleaning pipeline:
//
//	Stage 1 (readability): extract main content, strip nav/footer/sidebar/ads
//	Stage 2 (markdown):    convert clean HTML → Markdown (or html/text pass-through)
//
// The converter is created once and reused across all requests (goroutine-safe).
type Cleaner struct {
	mdConverter *converter.Converter
}

// NewCleaner initialises the Cleaner with a pre-configured Markdown converter.
func NewCleaner() *Cleaner {
	return &Cleaner{
		mdConverter: newMarkdownConverter(),
	}
}

// CleanOptions carries optional content-filtering parameters for the pipeline.
type CleanOptions struct {
	CSSSelector string
	IncludeTags []string
	ExcludeTags []string
}

// Clean runs the full pipeline and returns a partial CleanResponse
// (Content + Metadata + Tokens filled; StatusCode and Timing are left to
// the caller).
//
// Flow:
//  1. Estimate original tokens from raw HTML.
//  2. Apply CSS selector and include/exclude tag filters (if provided).
//  3. Stage 1: go-readability extracts main content.
//     Fallback: if extraction fails or content is too short, use raw HTML.
//  4. Stage 2: convert to the requested output format.
//  5. Estimate cleaned tokens and compute savings.
func (c *Cleaner) Clean(rawHTML string, sourceURL string, format string, extractMode string, opts ...CleanOptions) (*models.CleanResponse, error) {
	originalTokens := EstimateTokens(rawHTML)

	if len(opts) > 0 {
		o := opts[0]
		if o.CSSSelector != "" {
			selected, err := ApplyCSSSelector(rawHTML, o.CSSSelector)
			if err != nil {
				return nil, models.NewExtractError(models.ErrCodeInvalidInput, "invalid css_selector", err)
			}
			rawHTML = selected
		}
		if len(o.IncludeTags) > 0 || len(o.ExcludeTags) > 0 {
			rawHTML = FilterContent(rawHTML, o.IncludeTags, o.ExcludeTags)
		}
	}

	var article readability.Article
	if extractMode == "raw" {
		article = fallbackArticle(rawHTML)
	} else {
		article, _ = ExtractContent(rawHTML, sourceURL)
	}

	content, err := c.convert(article, format, sourceURL)
	if err != nil {
		return nil, models.NewExtractError(models.ErrCodeInternal, "format conversion failed", err)
	}

	cleanedTokens := EstimateTokens(content)
	savings := 0.0
	if originalTokens > 0 {
		savings = math.Round((1-float64(cleanedTokens)/float64(originalTokens))*10000) / 100
		if savings < 0 {
			savings = 0
		}
	}

	return &models.CleanResponse{
		Success: true,
		Content: content,
		Metadata: models.Metadata{
			Title:     article.Title,
			Byline:    article.Byline,
			Excerpt:   article.Excerpt,
			SiteName:  article.SiteName,
			Language:  article.Language,
			SourceURL: sourceURL,
		},
		Tokens: models.TokenInfo{
			OriginalEstimate: originalTokens,
			CleanedEstimate:  cleanedTokens,
			SavingsPercent:   savings,
		},
	}, nil
}

// convert renders the article content in the requested output format.
func (c *Cleaner) convert(article readability.Article, format string, sourceURL string) (string, error) {
	switch format {
	case "html":
		return article.Content, nil
	case "text":
		return article.TextContent, nil
	default: // markdown
		md, err := ToMarkdown(c.mdConverter, article.Content, domainOf(sourceURL))
		if err != nil {
			slog.Warn("markdown conversion failed, returning text content",
				"url", sourceURL, "error", err,
			)
			return article.TextContent, nil
		}
		return md, nil
	}
}

// domainOf extracts scheme://host from a URL for relative-link resolution.
func domainOf(rawURL string) string {
	u, err := nurl.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
