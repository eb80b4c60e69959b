package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestScraper(respectRobots bool) *Scraper {
	return NewScraper("test-agent", 2*time.Second, respectRobots, zap.NewNop().Sugar())
}

const articlePage = `<!DOCTYPE html>
<html>
<head>
<meta property="og:image" content="https://cdn.example.com/photo.jpg">
<meta name="author" content="Jane Reporter">
<title>Game recap</title>
</head>
<body>
<p>ok</p>
<p>The home team pulled away in the fourth quarter behind a dominant bench performance, outscoring the visitors by eighteen points over the final eight minutes of regulation play.</p>
<p>Short one.</p>
<p>Coaches on both sides credited the defensive adjustments made at halftime for the swing, pointing to the switch-heavy scheme that held the starting backcourt to just nine combined points.</p>
</body>
</html>`

func TestFetchExtractsTextImageAndAuthor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	res := newTestScraper(false).Fetch(context.Background(), srv.URL)

	assert.Contains(t, res.Text, "pulled away in the fourth quarter")
	assert.Contains(t, res.Text, "defensive adjustments")
	// Paragraphs of 20 characters or fewer are boilerplate.
	assert.NotContains(t, res.Text, "ok")
	assert.NotContains(t, res.Text, "Short one.")
	assert.Equal(t, "https://cdn.example.com/photo.jpg", res.ImageURL)
	assert.Equal(t, "Jane Reporter", res.Author)
}

func TestFetchAuthorFromArticleAuthorProperty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="article:author" content="Staff Writer">
		</head><body><p>A body paragraph that is long enough to count.</p></body></html>`))
	}))
	defer srv.Close()

	res := newTestScraper(false).Fetch(context.Background(), srv.URL)
	assert.Equal(t, "Staff Writer", res.Author)
	assert.Empty(t, res.ImageURL)
}

func TestFetchTruncatesLongContent(t *testing.T) {
	long := strings.Repeat("a", 6000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>" + long + "</p></body></html>"))
	}))
	defer srv.Close()

	res := newTestScraper(false).Fetch(context.Background(), srv.URL)
	assert.Len(t, res.Text, 5000)
}

func TestFetchNotFoundYieldsNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	assert.Equal(t, Result{}, newTestScraper(false).Fetch(context.Background(), srv.URL))
}

func TestFetchTimeoutYieldsNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	s := NewScraper("test-agent", 50*time.Millisecond, false, zap.NewNop().Sugar())
	assert.Equal(t, Result{}, s.Fetch(context.Background(), srv.URL))
}

func TestFetchUnreachableHostYieldsNothing(t *testing.T) {
	s := newTestScraper(false)
	assert.Equal(t, Result{}, s.Fetch(context.Background(), "http://127.0.0.1:1"))
}

func TestFetchMalformedHTMLDoesNotPanic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>unterminated <div><<<>>>"))
	}))
	defer srv.Close()

	require.NotPanics(t, func() {
		newTestScraper(false).Fetch(context.Background(), srv.URL)
	})
}

func TestFetchHonorsRobotsDisallow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /"))
	})
	var articleHits int
	mux.HandleFunc("/story", func(w http.ResponseWriter, r *http.Request) {
		articleHits++
		w.Write([]byte(articlePage))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := newTestScraper(true).Fetch(context.Background(), srv.URL+"/story")
	assert.Equal(t, Result{}, res)
	assert.Zero(t, articleHits)
}

func TestFetchIgnoresRobotsWhenDisabled(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /"))
	})
	mux.HandleFunc("/story", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articlePage))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := newTestScraper(false).Fetch(context.Background(), srv.URL+"/story")
	assert.NotEmpty(t, res.Text)
}

func TestFetchAllowsWhenRobotsUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/story", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articlePage))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := newTestScraper(true).Fetch(context.Background(), srv.URL+"/story")
	assert.NotEmpty(t, res.Text)
}
