package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/use-agent/linkextract/models"
)

// oembedDoc is the subset of the Instagram oEmbed response we consume.
// The endpoint returns title/author metadata but never the full caption.
type oembedDoc struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// fetchOEmbed queries the oEmbed endpoint for the post URL. It is called
// only after the primary embed scrape was judged insufficient.
func (ig *Instagram) fetchOEmbed(ctx context.Context, postURL string) (*oembedDoc, error) {
	if err := ig.waitErr(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s?url=%s", ig.oembedBase, url.QueryEscape(postURL))
	resp, err := ig.fetcher.Get(ctx, endpoint, map[string]string{"User-Agent": botUA})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, models.NewExtractError(models.ErrCodeFetch,
			fmt.Sprintf("oEmbed endpoint returned HTTP %d", resp.StatusCode), nil)
	}

	var doc oembedDoc
	if err := json.Unmarshal([]byte(resp.Body), &doc); err != nil {
		return nil, models.NewExtractError(models.ErrCodeFetch, "oEmbed response is not valid JSON", err)
	}
	return &doc, nil
}
