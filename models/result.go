package models

// Source identifies which extraction strategy produced a result. It doubles
// as the tag of the output JSON union: every result document carries it in
// its "source" field.
const (
	SourceInstagram = "instagram"
	SourceSchemaOrg = "schema.org"
	SourceWeb       = "web"
	SourceError     = "error"
)

// Media types reported for Instagram posts.
const (
	MediaTypeImage    = "image"
	MediaTypeVideo    = "video"
	MediaTypeCarousel = "carousel"
	MediaTypeUnknown  = "unknown"
)

// ExtractionResult is implemented by every result variant. Results are
// immutable once produced: built per invocation, serialised, discarded.
type ExtractionResult interface {
	// ResultSource returns the "source" tag of the document.
	ResultSource() string
}

// InstagramResult is the output document for Instagram posts and reels.
type InstagramResult struct {
	Source    string `json:"source"` // always "instagram"
	Shortcode string `json:"shortcode"`
	URL       string `json:"url"`
	// Caption is always present. An empty caption is an expected
	// rate-limit degradation, not an error.
	Caption   string `json:"caption"`
	Username  string `json:"username,omitempty"`
	MediaType string `json:"media_type"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

func (r *InstagramResult) ResultSource() string { return r.Source }

// RecipeResult wraps a schema.org/Recipe object found in the page's JSON-LD.
// Data is the parsed object passed through verbatim, not re-validated
// field by field.
type RecipeResult struct {
	Source string         `json:"source"` // always "schema.org"
	Type   string         `json:"type"`   // always "recipe"
	URL    string         `json:"url"`
	Data   map[string]any `json:"data"`
}

func (r *RecipeResult) ResultSource() string { return r.Source }

// WebResult is the generic fallback document for arbitrary pages.
// All fields other than URL are best-effort and may be absent.
type WebResult struct {
	Source      string `json:"source"` // always "web"
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	BodyText    string `json:"body_text,omitempty"`
}

func (r *WebResult) ResultSource() string { return r.Source }

// ErrorResult is the uniform fatal-error document. The CLI writes it to
// stdout and exits non-zero; no partial JSON is ever emitted.
type ErrorResult struct {
	Source string `json:"source"` // always "error"
	Error  string `json:"error"`
	URL    string `json:"url"`
}

func (r *ErrorResult) ResultSource() string { return r.Source }

// NewErrorResult builds the error document for a failed extraction.
func NewErrorResult(url string, err error) *ErrorResult {
	return &ErrorResult{Source: SourceError, Error: err.Error(), URL: url}
}
