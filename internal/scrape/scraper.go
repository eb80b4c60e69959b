package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"news_digest/internal/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

const (
	// Paragraphs at or below this length are treated as boilerplate.
	minParagraphChars = 20
	// Below this total length the paragraph pass is considered a parsing
	// artifact and the readability extractor gets a try.
	thinContentChars = 200
	maxContentChars  = 5000
)

// Result carries whatever supplementary data a page yielded. Zero value
// means the scrape produced nothing.
type Result struct {
	Text     string
	ImageURL string
	Author   string
}

// Scraper performs a single best-effort fetch per article URL. Every
// failure mode collapses into an empty Result; nothing escapes.
type Scraper struct {
	client        *http.Client
	userAgent     string
	respectRobots bool
	log           *zap.SugaredLogger

	mu     sync.Mutex
	robots map[string]*robotstxt.Group
}

func NewScraper(userAgent string, timeout time.Duration, respectRobots bool, log *zap.SugaredLogger) *Scraper {
	return &Scraper{
		client:        &http.Client{Timeout: timeout},
		userAgent:     userAgent,
		respectRobots: respectRobots,
		log:           log,
		robots:        make(map[string]*robotstxt.Group),
	}
}

// Fetch downloads the page and extracts body text, an OpenGraph image and
// an author name. Enrichment is best-effort: network errors, timeouts,
// non-200 statuses, parse failures and robots denials all return the zero
// Result.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) Result {
	if s.respectRobots && !s.allowed(ctx, pageURL) {
		s.log.Debugf("robots.txt disallows %s, skipping scrape", pageURL)
		return Result{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Result{}
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Referer", "https://www.google.com/")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debugf("scrape of %s failed: %v", pageURL, err)
		return Result{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Debugf("scrape of %s failed: HTTP %d", pageURL, resp.StatusCode)
		return Result{}
	}

	utf8Reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		utf8Reader = resp.Body
	}
	body, err := io.ReadAll(utf8Reader)
	if err != nil {
		s.log.Debugf("scrape of %s failed reading body: %v", pageURL, err)
		return Result{}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.log.Debugf("scrape of %s failed parsing HTML: %v", pageURL, err)
		return Result{}
	}

	text := collectParagraphs(doc)
	if len(text) <= thinContentChars {
		if extracted := extractReadable(string(body), pageURL); len(extracted) > len(text) {
			text = extracted
		}
	}

	res := Result{Text: utils.Truncate(text, maxContentChars)}
	if v, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		res.ImageURL = strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok && strings.TrimSpace(v) != "" {
		res.Author = strings.TrimSpace(v)
	} else if v, ok := doc.Find(`meta[property="article:author"]`).Attr("content"); ok {
		res.Author = strings.TrimSpace(v)
	}
	return res
}

func collectParagraphs(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		t := strings.TrimSpace(sel.Text())
		if len(t) > minParagraphChars {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

var reBlockTags = regexp.MustCompile(`</?(?:div|p|br|li|td|tr|h[1-6])[^>]*>`)

// addSpacesBeforeParsing keeps adjacent block elements from running their
// text together once tags are stripped.
func addSpacesBeforeParsing(html string) string {
	return reBlockTags.ReplaceAllStringFunc(html, func(tag string) string {
		if strings.HasPrefix(tag, "</") {
			return tag + " "
		}
		return " " + tag
	})
}

// extractReadable pulls the main article body out of pages whose prose is
// not carried in paragraph elements.
func extractReadable(rawHTML, pageURL string) string {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(addSpacesBeforeParsing(article.Content)))
	if err != nil {
		return ""
	}
	return utils.NormalizeWhitespace(doc.Text())
}

func (s *Scraper) allowed(ctx context.Context, pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return false
	}

	s.mu.Lock()
	group, cached := s.robots[u.Host]
	s.mu.Unlock()
	if !cached {
		group = s.fetchRobots(ctx, u)
		s.mu.Lock()
		s.robots[u.Host] = group
		s.mu.Unlock()
	}

	// An unreachable or unparseable robots.txt does not block scraping.
	if group == nil {
		return true
	}
	return group.Test(u.Path)
}

func (s *Scraper) fetchRobots(ctx context.Context, u *url.URL) *robotstxt.Group {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debugf("failed to load robots.txt from %s: %v", robotsURL, err)
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		s.log.Debugf("failed to parse robots.txt from %s: %v", robotsURL, err)
		return nil
	}
	return data.FindGroup(s.userAgent)
}
