package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/linkextract/config"
	"github.com/use-agent/linkextract/fetcher"
	"github.com/use-agent/linkextract/models"
)

func testDispatcher(t *testing.T, handler http.Handler) (*Dispatcher, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	f := fetcher.New(config.FetchConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "test-agent/1.0",
		MaxBodyBytes: 1 << 20,
	})
	d := NewDispatcher(f, config.ExtractConfig{
		BodyTextLimit:  5000,
		InstagramRPS:   1000,
		InstagramBurst: 1000,
	})
	return d, srv
}

func TestParseTypeHint(t *testing.T) {
	for _, s := range []string{"auto", "instagram", "web"} {
		hint, err := ParseTypeHint(s)
		require.NoError(t, err)
		assert.Equal(t, TypeHint(s), hint)
	}

	hint, err := ParseTypeHint("")
	require.NoError(t, err)
	assert.Equal(t, HintAuto, hint)

	_, err = ParseTypeHint("rss")
	require.Error(t, err)
	var ee *models.ExtractError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, models.ErrCodeInvalidInput, ee.Code)
}

func TestDispatch_InvalidURLBeforeNetwork(t *testing.T) {
	var hits atomic.Int64
	d, _ := testDispatcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	for _, bad := range []string{"", "not a url", "ftp://example.com/x", "/relative/path", "https://"} {
		_, err := d.Dispatch(context.Background(), bad, HintAuto)
		require.Error(t, err, "url %q", bad)
		var ee *models.ExtractError
		require.True(t, errors.As(err, &ee), "url %q", bad)
		assert.Equal(t, models.ErrCodeInvalidURL, ee.Code, "url %q", bad)
	}
	assert.Zero(t, hits.Load())
}

func TestDispatch_RecipeWins(t *testing.T) {
	d, srv := testDispatcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<title>Best Carbonara</title>
			<script type="application/ld+json">{"@type":"Recipe","name":"Carbonara"}</script>
		</head><body>lots of prose</body></html>`))
	}))

	result, err := d.Dispatch(context.Background(), srv.URL, HintAuto)
	require.NoError(t, err)

	recipe, ok := result.(*models.RecipeResult)
	require.True(t, ok)
	assert.Equal(t, models.SourceSchemaOrg, recipe.Source)
	assert.Equal(t, "recipe", recipe.Type)
	assert.Equal(t, srv.URL, recipe.URL)
	assert.Equal(t, "Carbonara", recipe.Data["name"])
}

func TestDispatch_FallsThroughToGenericOnSingleFetch(t *testing.T) {
	var hits atomic.Int64
	d, srv := testDispatcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`<html><head><title>No recipes here</title></head>
			<body><p>Just an article.</p></body></html>`))
	}))

	result, err := d.Dispatch(context.Background(), srv.URL, HintAuto)
	require.NoError(t, err)

	web, ok := result.(*models.WebResult)
	require.True(t, ok)
	assert.Equal(t, models.SourceWeb, web.Source)
	assert.Equal(t, "No recipes here", web.Title)
	assert.Equal(t, "Just an article.", web.BodyText)
	// The fallback reuses the already-fetched body.
	assert.Equal(t, int64(1), hits.Load())
}

func TestDispatch_WebHintSkipsRecipe(t *testing.T) {
	d, srv := testDispatcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<title>Recipe page</title>
			<script type="application/ld+json">{"@type":"Recipe","name":"Ignored"}</script>
		</head><body>content</body></html>`))
	}))

	result, err := d.Dispatch(context.Background(), srv.URL, HintWeb)
	require.NoError(t, err)

	web, ok := result.(*models.WebResult)
	require.True(t, ok)
	assert.Equal(t, "Recipe page", web.Title)
}

func TestDispatch_InstagramHintForcesStrategy(t *testing.T) {
	// The hint routes to the Instagram strategy even for a non-Instagram
	// host; without a shortcode in the path that fails as INVALID_URL.
	d, srv := testDispatcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := d.Dispatch(context.Background(), srv.URL+"/article/1", HintInstagram)
	require.Error(t, err)
	var ee *models.ExtractError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, models.ErrCodeInvalidURL, ee.Code)
}

func TestDispatch_UnreachableHostIsTyped(t *testing.T) {
	d, _ := testDispatcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := d.Dispatch(context.Background(), "http://127.0.0.1:1/page", HintAuto)
	require.Error(t, err)
	var ee *models.ExtractError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, models.ErrCodeFetch, ee.Code)
}

func TestIsInstagramPost(t *testing.T) {
	cases := []struct {
		rawURL string
		want   bool
	}{
		{"https://www.instagram.com/p/ABC123/", true},
		{"https://instagram.com/p/ABC123/", true},
		{"https://instagr.am/p/ABC123/", true},
		{"https://www.instagram.com/reel/DEF456/", true},
		{"https://www.instagram.com/reels/GHI789/", true},
		{"https://www.instagram.com/chef_anna/", false},
		{"https://www.instagram.com/explore/", false},
		{"https://example.com/p/ABC123/", false},
		{"https://notinstagram.com/p/ABC123/", false},
	}
	for _, tc := range cases {
		u := mustParse(t, tc.rawURL)
		assert.Equal(t, tc.want, isInstagramPost(u), "url %q", tc.rawURL)
	}
}
