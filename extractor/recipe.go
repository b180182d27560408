package extractor

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractRecipe scans already-fetched HTML for schema.org/Recipe JSON-LD
// and returns the first matching object in document order, or nil when the
// page carries no recipe structured data. A nil return is a normal outcome
// that triggers dispatcher fallback, not an error.
//
// Malformed JSON-LD is common in the wild; blocks that fail to parse are
// skipped silently.
func ExtractRecipe(rawHTML string) map[string]any {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var recipe map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true // skip malformed block
		}
		if match := findRecipe(data); match != nil {
			recipe = match
			return false // first match wins
		}
		return true
	})
	return recipe
}

// findRecipe searches a parsed JSON-LD value for a Recipe object. Handles
// the three shapes seen in the wild: a bare object, a top-level array of
// objects, and an object wrapping a @graph array.
func findRecipe(data any) map[string]any {
	switch v := data.(type) {
	case map[string]any:
		if isRecipe(v) {
			return v
		}
		if graph, ok := v["@graph"].([]any); ok {
			return firstRecipeIn(graph)
		}
	case []any:
		return firstRecipeIn(v)
	}
	return nil
}

func firstRecipeIn(items []any) map[string]any {
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok && isRecipe(obj) {
			return obj
		}
	}
	return nil
}

// isRecipe reports whether the object's @type is Recipe. @type may be a
// string or an array of strings; matching is case-insensitive.
func isRecipe(obj map[string]any) bool {
	switch t := obj["@type"].(type) {
	case string:
		return strings.EqualFold(t, "Recipe")
	case []any:
		for _, entry := range t {
			if s, ok := entry.(string); ok && strings.EqualFold(s, "Recipe") {
				return true
			}
		}
	}
	return false
}
