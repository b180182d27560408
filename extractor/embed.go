package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EmbedFields is the structured data pulled out of an Instagram embed page.
type EmbedFields struct {
	Caption   string
	Username  string
	Thumbnail string
	IsVideo   bool
	IsSidecar bool

	// HasMarkers records whether any of the expected markup markers were
	// present at all, distinguishing "post without caption" from "embed
	// page served empty" (a common rate-limit degradation).
	HasMarkers bool
}

// Quality grades the parse outcome for the embed→oEmbed fallback decision.
func (f EmbedFields) Quality() Quality {
	switch {
	case f.Caption != "":
		return QualitySufficient
	case f.HasMarkers:
		return QualityInsufficient
	default:
		return QualityAbsent
	}
}

// embedParser turns embed-page markup into structured fields. The markup
// shape is a third-party implementation detail that changes without notice,
// so all matching rules live behind this interface and never leak into
// dispatch logic.
type embedParser interface {
	Parse(html string) EmbedFields
}

// captionedEmbedParser parses the server-rendered markup of
// /p/{shortcode}/embed/captioned/ pages.
//
// Two layers of matching: CSS classes of the rendered caption block
// (.Caption, .CaptionUsername, .EmbeddedMediaImage) and, when those are
// missing, JSON fragments Instagram inlines into the page scripts
// (edge_media_to_caption, "username", "is_video").
type captionedEmbedParser struct{}

var (
	reBr            = regexp.MustCompile(`(?i)<br\s*/?>`)
	reEdgeCaption   = regexp.MustCompile(`(?s)"edge_media_to_caption".*?"text"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	reCaptionObject = regexp.MustCompile(`"caption"\s*:\s*\{[^}]*"text"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	reJSONUsername  = regexp.MustCompile(`"username"\s*:\s*"([^"]*)"`)
	reShortcodePath = regexp.MustCompile(`/(?:p|reel|reels)/([A-Za-z0-9_-]+)`)
)

func (captionedEmbedParser) Parse(raw string) EmbedFields {
	var f EmbedFields

	// <br> separates caption lines in the rendered markup; turn them into
	// newlines before parsing so the text nodes keep the line structure.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(reBr.ReplaceAllString(raw, "\n")))
	if err != nil {
		doc = nil
	}

	if doc != nil {
		if capBlock := doc.Find(".Caption").First(); capBlock.Length() > 0 {
			f.HasMarkers = true
			f.Username = strings.TrimSpace(capBlock.Find(".CaptionUsername").First().Text())
			capBlock.Find(".CaptionUsername, .CaptionComments").Remove()
			f.Caption = strings.TrimSpace(capBlock.Text())
		}
		if f.Username == "" {
			f.Username = strings.TrimSpace(doc.Find(".CaptionUsername").First().Text())
		}
		if src, ok := doc.Find("img.EmbeddedMediaImage").First().Attr("src"); ok {
			f.HasMarkers = true
			f.Thumbnail = src
		}
		if video := doc.Find("video").First(); video.Length() > 0 {
			f.HasMarkers = true
			f.IsVideo = true
			if f.Thumbnail == "" {
				if poster, ok := video.Attr("poster"); ok {
					f.Thumbnail = poster
				}
			}
		}
	}

	// JSON fragments inlined into the page scripts cover posts whose
	// rendered caption block is missing.
	if f.Caption == "" {
		if m := reEdgeCaption.FindStringSubmatch(raw); m != nil {
			f.HasMarkers = true
			f.Caption = strings.TrimSpace(decodeJSONString(m[1]))
		}
	}
	if f.Caption == "" {
		if m := reCaptionObject.FindStringSubmatch(raw); m != nil {
			f.HasMarkers = true
			f.Caption = strings.TrimSpace(decodeJSONString(m[1]))
		}
	}
	if f.Username == "" {
		if m := reJSONUsername.FindStringSubmatch(raw); m != nil {
			f.Username = m[1]
		}
	}

	if strings.Contains(raw, `"is_video":true`) {
		f.IsVideo = true
	}
	if strings.Contains(raw, "edge_sidecar_to_children") || strings.Contains(raw, "GraphSidecar") {
		f.IsSidecar = true
	}

	return f
}

// shortcodeFromPath pulls the post/reel shortcode out of a URL path.
// Returns "" when the path has no post segment.
func shortcodeFromPath(path string) string {
	if m := reShortcodePath.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	return ""
}

// decodeJSONString resolves JSON string escapes (\n, \", \uXXXX) in a raw
// matched fragment. JSON additionally allows \/ which strconv.Unquote
// rejects, so that one is resolved first.
func decodeJSONString(s string) string {
	s = strings.ReplaceAll(s, `\/`, `/`)
	if unquoted, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return unquoted
	}
	return s
}
