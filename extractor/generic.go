package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/linkextract/cleaner"
	"github.com/use-agent/linkextract/models"
)

// ExtractGeneric builds a best-effort document from arbitrary page HTML:
// title, meta description, og:image and a capped visible-text body. Every
// field is optional; generic extraction never fails on missing data.
func ExtractGeneric(rawHTML string, pageURL string, bodyLimit int) *models.WebResult {
	result := &models.WebResult{
		Source: models.SourceWeb,
		URL:    pageURL,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err == nil {
		result.Title = cleaner.CollapseWhitespace(doc.Find("title").First().Text())

		// <meta name="description"> wins over og:description.
		if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && desc != "" {
			result.Description = strings.TrimSpace(desc)
		} else if og, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
			result.Description = strings.TrimSpace(og)
		}

		if img, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
			result.Image = strings.TrimSpace(img)
		}
	}

	result.BodyText = cleaner.Truncate(cleaner.VisibleText(rawHTML), bodyLimit)

	return result
}
