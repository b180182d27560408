package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleText_BodyOnly(t *testing.T) {
	html := `<html><head><title>Head title</title></head>
		<body><h1>Heading</h1><p>First para.</p><p>Second   para.</p></body></html>`

	assert.Equal(t, "Heading First para. Second para.", VisibleText(html))
}

func TestVisibleText_SkipsScriptStyleNoscript(t *testing.T) {
	html := `<body>
		<script>var x = 1;</script>
		<style>p { margin: 0 }</style>
		<noscript>enable javascript</noscript>
		<p>kept</p>
	</body>`

	assert.Equal(t, "kept", VisibleText(html))
}

func TestVisibleText_NestedScriptContent(t *testing.T) {
	html := `<body><div><script>document.write("<p>injected</p>");</script><p>real</p></div></body>`
	assert.Equal(t, "real", VisibleText(html))
}

func TestVisibleText_Empty(t *testing.T) {
	assert.Empty(t, VisibleText(""))
	assert.Empty(t, VisibleText("<html><head><title>only head</title></head></html>"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "", Truncate("abc", -1))
	// Multi-byte runes are never split.
	assert.Equal(t, "日本", Truncate("日本語", 2))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a\t\tb\n\nc  "))
	assert.Equal(t, "", CollapseWhitespace("   "))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "a fragment", stripTags(`<div><em>a</em> fragment</div>`))
	assert.Equal(t, "text", stripTags(`<script>hidden()</script><span>text</span>`))
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("ab"))
	assert.Equal(t, 4, EstimateTokens("twelve chars"))
	assert.Equal(t, 2, EstimateTokens("日本語テキスト"))
}
