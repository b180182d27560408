package models

// ExtractRequest is the payload for POST /api/v1/extract.
type ExtractRequest struct {
	// URL is the target to extract from. Required.
	URL string `json:"url" binding:"required,url"`

	// Type forces a strategy instead of auto-detection.
	// Allowed: "auto" (default), "instagram", "web".
	Type string `json:"type,omitempty" binding:"omitempty,oneof=auto instagram web"`

	// MaxAge enables cache lookups: a cached result younger than MaxAge
	// milliseconds is returned instead of refetching. 0 disables caching.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (r *ExtractRequest) Defaults() {
	if r.Type == "" {
		r.Type = "auto"
	}
}

// CleanRequest is the payload for POST /api/v1/clean.
// It fetches a page and runs the readability cleaning pipeline on it.
type CleanRequest struct {
	// URL is the target page. Required.
	URL string `json:"url" binding:"required,url"`

	// OutputFormat controls the response body format.
	// Allowed: "markdown" (default), "html", "text".
	OutputFormat string `json:"output_format,omitempty" binding:"omitempty,oneof=markdown html text"`

	// ExtractMode controls the content extraction strategy.
	// "readability" (default): isolate the main article body first.
	// "raw": skip readability, convert the full page.
	ExtractMode string `json:"extract_mode,omitempty" binding:"omitempty,oneof=readability raw"`

	// CSSSelector optionally narrows the page to matching elements
	// before cleaning.
	CSSSelector string `json:"css_selector,omitempty"`

	// IncludeTags / ExcludeTags filter content by CSS selector before
	// the readability stage.
	IncludeTags []string `json:"include_tags,omitempty"`
	ExcludeTags []string `json:"exclude_tags,omitempty"`

	// MaxAge enables cache lookups, in milliseconds. 0 disables caching.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (r *CleanRequest) Defaults() {
	if r.OutputFormat == "" {
		r.OutputFormat = "markdown"
	}
	if r.ExtractMode == "" {
		r.ExtractMode = "readability"
	}
}
