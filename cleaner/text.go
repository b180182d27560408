package cleaner

import (
	"strings"

	"golang.org/x/net/html"
)

// VisibleText approximates the visible text of a page: everything inside
// <body> with <script>, <style> and <noscript> subtrees skipped, all
// remaining tags stripped, and whitespace collapsed to single spaces.
// No sentence-boundary awareness is attempted.
func VisibleText(rawHTML string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(rawHTML))
	var buf strings.Builder
	inBody := false
	skipDepth := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(buf.String())
		case html.StartTagToken:
			tag, _ := tokenizer.TagName()
			switch string(tag) {
			case "body":
				inBody = true
			case "script", "style", "noscript":
				skipDepth++
			}
		case html.EndTagToken:
			tag, _ := tokenizer.TagName()
			switch string(tag) {
			case "script", "style", "noscript":
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if inBody && skipDepth == 0 {
				text := strings.Join(strings.Fields(string(tokenizer.Text())), " ")
				if text != "" {
					buf.WriteString(text)
					buf.WriteByte(' ')
				}
			}
		}
	}
}

// Truncate caps s at limit runes. Counting runes rather than bytes keeps
// multi-byte text from being cut mid-character.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// CollapseWhitespace squeezes runs of whitespace into single spaces and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripTags removes all markup from an HTML fragment, leaving text only.
// Unlike VisibleText it does not require a <body> element, so it works on
// fragments produced by the readability stage.
func stripTags(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var buf strings.Builder
	skipDepth := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(buf.String())
		case html.StartTagToken:
			tag, _ := tokenizer.TagName()
			switch string(tag) {
			case "script", "style", "noscript":
				skipDepth++
			}
		case html.EndTagToken:
			tag, _ := tokenizer.TagName()
			switch string(tag) {
			case "script", "style", "noscript":
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if skipDepth == 0 {
				text := strings.Join(strings.Fields(string(tokenizer.Text())), " ")
				if text != "" {
					buf.WriteString(text)
					buf.WriteByte(' ')
				}
			}
		}
	}
}
