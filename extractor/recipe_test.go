package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRecipe_BareObject(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{"@type":"Recipe","name":"Carbonara"}</script>
	</head><body></body></html>`

	recipe := ExtractRecipe(html)
	require.NotNil(t, recipe)
	assert.Equal(t, "Carbonara", recipe["name"])
}

func TestExtractRecipe_SecondBlockWins(t *testing.T) {
	// Only the second block holds a Recipe; document order decides.
	html := `<html><head>
		<script type="application/ld+json">{"@type":"WebSite","name":"Some Blog"}</script>
		<script type="application/ld+json">{"@type":"Recipe","name":"Pancakes"}</script>
	</head><body></body></html>`

	recipe := ExtractRecipe(html)
	require.NotNil(t, recipe)
	assert.Equal(t, "Pancakes", recipe["name"])
}

func TestExtractRecipe_Graph(t *testing.T) {
	html := `<script type="application/ld+json">
		{"@context":"https://schema.org","@graph":[
			{"@type":"Organization","name":"Kitchen Inc"},
			{"@type":"Recipe","name":"Ramen"}
		]}
	</script>`

	recipe := ExtractRecipe(html)
	require.NotNil(t, recipe)
	assert.Equal(t, "Ramen", recipe["name"])
}

func TestExtractRecipe_TopLevelArray(t *testing.T) {
	html := `<script type="application/ld+json">
		[{"@type":"BreadcrumbList"},{"@type":"Recipe","name":"Chili"}]
	</script>`

	recipe := ExtractRecipe(html)
	require.NotNil(t, recipe)
	assert.Equal(t, "Chili", recipe["name"])
}

func TestExtractRecipe_ArrayType(t *testing.T) {
	html := `<script type="application/ld+json">
		{"@type":["Recipe","NewsArticle"],"name":"Stew"}
	</script>`

	recipe := ExtractRecipe(html)
	require.NotNil(t, recipe)
	assert.Equal(t, "Stew", recipe["name"])
}

func TestExtractRecipe_CaseInsensitiveType(t *testing.T) {
	html := `<script type="application/ld+json">{"@type":"recipe","name":"Tacos"}</script>`

	recipe := ExtractRecipe(html)
	require.NotNil(t, recipe)
	assert.Equal(t, "Tacos", recipe["name"])
}

func TestExtractRecipe_SkipsMalformedBlocks(t *testing.T) {
	// Malformed JSON-LD is common in the wild; broken blocks must be
	// skipped, not propagated as errors.
	html := `<html><head>
		<script type="application/ld+json">{"@type":"Recipe", trailing garbage</script>
		<script type="application/ld+json">{"@type":"Recipe","name":"Valid"}</script>
	</head></html>`

	recipe := ExtractRecipe(html)
	require.NotNil(t, recipe)
	assert.Equal(t, "Valid", recipe["name"])
}

func TestExtractRecipe_NoBlocks(t *testing.T) {
	assert.Nil(t, ExtractRecipe(`<html><body><p>just a page</p></body></html>`))
}

func TestExtractRecipe_NoRecipeType(t *testing.T) {
	html := `<script type="application/ld+json">{"@type":"Article","name":"Not food"}</script>`
	assert.Nil(t, ExtractRecipe(html))
}

func TestExtractRecipe_Deterministic(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{"@type":"Recipe","name":"First"}</script>
		<script type="application/ld+json">{"@type":"Recipe","name":"Second"}</script>
	</head></html>`

	for i := 0; i < 5; i++ {
		recipe := ExtractRecipe(html)
		require.NotNil(t, recipe)
		assert.Equal(t, "First", recipe["name"])
	}
}
