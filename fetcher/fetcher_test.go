package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/linkextract/config"
	"github.com/use-agent/linkextract/models"
)

func testConfig() config.FetchConfig {
	return config.FetchConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "test-agent/1.0",
		MaxBodyBytes: 1 << 20,
	}
}

func TestGet_ReturnsBodyAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := New(testConfig())
	resp, err := f.Get(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Body, "hello")
}

func TestGet_ReturnsBodyOnErrorStatus(t *testing.T) {
	// Error pages still carry inspectable content; a 404 is not a
	// transport failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not here"))
	}))
	defer srv.Close()

	f := New(testConfig())
	resp, err := f.Get(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not here", resp.Body)
}

func TestGet_SendsUserAgentAndHeaderOverrides(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	f := New(testConfig())

	_, err := f.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "test-agent/1.0", gotUA)

	_, err = f.Get(context.Background(), srv.URL, map[string]string{
		"User-Agent": "override/2.0",
		"Accept":     "text/html",
	})
	require.NoError(t, err)
	assert.Equal(t, "override/2.0", gotUA)
	assert.Equal(t, "text/html", gotAccept)
}

func TestGet_TransportFailureIsTyped(t *testing.T) {
	f := New(testConfig())

	// Port 1 on loopback is refused on any sane test machine.
	_, err := f.Get(context.Background(), "http://127.0.0.1:1", nil)

	require.Error(t, err)
	var ee *models.ExtractError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, models.ErrCodeFetch, ee.Code)
}

func TestGet_TimeoutIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Timeout = 20 * time.Millisecond
	f := New(cfg)

	_, err := f.Get(context.Background(), srv.URL, nil)

	require.Error(t, err)
	var ee *models.ExtractError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, models.ErrCodeTimeout, ee.Code)
}

func TestGet_BodyCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 100; i++ {
			w.Write([]byte("0123456789"))
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxBodyBytes = 64
	f := New(cfg)

	resp, err := f.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Body, 64)
}
