package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/use-agent/linkextract/config"
	"github.com/use-agent/linkextract/fetcher"
	"github.com/use-agent/linkextract/models"
)

// botUA is sent to Instagram endpoints only. Instagram serves full caption
// HTML to crawlers but rate-limits browser user agents on the embed page.
const botUA = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"

// Instagram extracts post/reel metadata by scraping the public
// embed-captioned page, falling back to the oEmbed endpoint when the embed
// markup is insufficient.
type Instagram struct {
	fetcher *fetcher.Fetcher
	parser  embedParser

	// limiter paces outbound Instagram calls (embed + oEmbed). Best-effort
	// politeness only; no retries are attempted.
	limiter *rate.Limiter

	// Endpoint bases, overridable in tests.
	embedBase  string
	oembedBase string
}

// NewInstagram creates the Instagram strategy.
func NewInstagram(f *fetcher.Fetcher, cfg config.ExtractConfig) *Instagram {
	return &Instagram{
		fetcher:    f,
		parser:     captionedEmbedParser{},
		limiter:    rate.NewLimiter(rate.Limit(cfg.InstagramRPS), cfg.InstagramBurst),
		embedBase:  "https://www.instagram.com",
		oembedBase: "https://api.instagram.com/oembed/",
	}
}

// Extract scrapes the post identified by u.
//
// An empty caption never fails the extraction — captions go missing
// whenever Instagram rate-limits the embed page, and the oEmbed fallback
// still recovers username and thumbnail. Only a transport failure on both
// the embed and the fallback call is fatal.
func (ig *Instagram) Extract(ctx context.Context, rawURL string, u *url.URL) (*models.InstagramResult, error) {
	shortcode := shortcodeFromPath(u.Path)
	if shortcode == "" {
		return nil, models.NewExtractError(models.ErrCodeInvalidURL,
			fmt.Sprintf("no Instagram shortcode in %q", rawURL), nil)
	}

	result := &models.InstagramResult{
		Source:    models.SourceInstagram,
		Shortcode: shortcode,
		URL:       rawURL,
		MediaType: models.MediaTypeUnknown,
	}

	var fields EmbedFields
	embedErr := ig.waitErr(ctx)
	if embedErr == nil {
		var resp *fetcher.Response
		resp, embedErr = ig.fetcher.Get(ctx, ig.embedURL(shortcode), map[string]string{
			"User-Agent": botUA,
			"Accept":     "text/html",
		})
		if embedErr == nil {
			fields = ig.parser.Parse(resp.Body)
		}
	}
	if embedErr != nil {
		slog.Warn("instagram embed fetch failed, relying on oEmbed fallback",
			"shortcode", shortcode, "error", embedErr)
	}

	result.Caption = fields.Caption
	result.Username = fields.Username
	result.Thumbnail = fields.Thumbnail
	result.MediaType = mediaTypeFor(u.Path, fields)

	if q := fields.Quality(); q != QualitySufficient {
		slog.Debug("embed data insufficient, trying oEmbed fallback",
			"shortcode", shortcode, "quality", q.String())

		oembed, oembedErr := ig.fetchOEmbed(ctx, rawURL)
		if oembedErr != nil {
			if embedErr != nil {
				// Both calls failed at the transport level.
				return nil, models.NewExtractError(models.ErrCodeFetch,
					fmt.Sprintf("instagram embed and oEmbed both unreachable for %s", shortcode), embedErr)
			}
			slog.Debug("oEmbed fallback failed, keeping embed data",
				"shortcode", shortcode, "error", oembedErr)
		} else {
			// Merge without overwriting non-empty embed-page fields.
			if result.Username == "" {
				result.Username = oembed.AuthorName
			}
			if result.Thumbnail == "" {
				result.Thumbnail = oembed.ThumbnailURL
			}
		}
	}

	return result, nil
}

// embedURL builds the public captioned embed page URL for a shortcode.
func (ig *Instagram) embedURL(shortcode string) string {
	return fmt.Sprintf("%s/p/%s/embed/captioned/", ig.embedBase, shortcode)
}

// waitErr blocks on the pacing limiter, mapping cancellation to a typed error.
func (ig *Instagram) waitErr(ctx context.Context) error {
	if err := ig.limiter.Wait(ctx); err != nil {
		return models.NewExtractError(models.ErrCodeTimeout, "instagram request pacing interrupted", err)
	}
	return nil
}

// mediaTypeFor derives the media type from the URL path and embed markers.
// Reel URLs are always video; carousel wins over the is_video flag because
// mixed carousels set both. With no embed markup at all the type stays
// unknown rather than guessing.
func mediaTypeFor(path string, fields EmbedFields) string {
	switch {
	case fields.IsSidecar:
		return models.MediaTypeCarousel
	case fields.IsVideo || strings.Contains(path, "/reel/") || strings.Contains(path, "/reels/"):
		return models.MediaTypeVideo
	case fields.HasMarkers:
		return models.MediaTypeImage
	default:
		return models.MediaTypeUnknown
	}
}
