package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobcrawl/internal/config"
)

func fetchConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Crawler.RequestTimeout = 5 * time.Second
	cfg.Crawler.MaxRetries = 0
	cfg.Crawler.UserAgent = "jobcrawl-test/1.0"
	return cfg
}

func TestFetchersParseDocument(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body><h1>hello</h1></body></html>"))
	}))
	defer srv.Close()

	cfg := fetchConfig()
	for _, engine := range []string{"resty", "raw"} {
		t.Run(engine, func(t *testing.T) {
			f, err := New(engine, cfg)
			require.NoError(t, err)
			defer f.Cleanup()

			doc, err := f.Fetch(context.Background(), srv.URL)
			require.NoError(t, err)
			assert.Equal(t, "hello", doc.Find("h1").Text())
			assert.Equal(t, "jobcrawl-test/1.0", gotUA)
		})
	}
}

func TestFetchersReportStatusErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := fetchConfig()
	for _, engine := range []string{"resty", "raw"} {
		t.Run(engine, func(t *testing.T) {
			f, err := New(engine, cfg)
			require.NoError(t, err)
			defer f.Cleanup()

			_, err = f.Fetch(context.Background(), srv.URL)
			var te *TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, http.StatusForbidden, te.StatusCode)
		})
	}
}

func TestFetcherNetworkFailure(t *testing.T) {
	f, err := New("raw", fetchConfig())
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")
	var te *TransportError
	require.ErrorAs(t, err, &te)
}

func TestNewUnknownEngine(t *testing.T) {
	_, err := New("headless", fetchConfig())
	require.Error(t, err)
}
