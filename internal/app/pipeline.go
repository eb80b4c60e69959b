package app

import (
	"context"
	"fmt"

	"news_digest/internal/categories"
	"news_digest/internal/config"
	"news_digest/internal/models"
	"news_digest/internal/scrape"
	"news_digest/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Scraped text at or below this length is assumed to be a parsing artifact;
// the article description is used for summarization instead.
const minScrapedChars = 200

type Searcher interface {
	Everything(ctx context.Context, query config.SearchConfig) ([]models.Article, int, error)
}

type ContentFetcher interface {
	Fetch(ctx context.Context, pageURL string) scrape.Result
}

type Summarizer interface {
	Summarize(ctx context.Context, title, description string) (string, error)
}

type Store interface {
	SaveArticle(ctx context.Context, id string, rec *models.EnrichedRecord) error
}

// Pipeline runs the per-article enrichment sequence: search, scrape,
// categorize, summarize, upsert. Articles are processed strictly in the
// order the search returned them; the limiter paces model calls to stay
// under the summarization quota.
type Pipeline struct {
	cfg        *config.PipelineConfig
	search     Searcher
	scraper    ContentFetcher
	summarizer Summarizer
	store      Store
	limiter    *rate.Limiter
	log        *zap.SugaredLogger
}

func New(cfg *config.PipelineConfig, search Searcher, scraper ContentFetcher, summarizer Summarizer, store Store, limiter *rate.Limiter, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		search:     search,
		scraper:    scraper,
		summarizer: summarizer,
		store:      store,
		limiter:    limiter,
		log:        log,
	}
}

// Run executes one full pass. The first error aborts the run; records
// already upserted stay persisted and the run is not resumable.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.summarizer == nil {
		return fmt.Errorf("%w: AI model not initialized", ErrConfigMissing)
	}

	articles, total, err := p.search.Everything(ctx, p.cfg.Search)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	if len(articles) == 0 {
		p.log.Info("no articles found for the given query")
		return nil
	}

	p.log.Infof("fetched %d articles (%d total results reported)", len(articles), total)

	for i, article := range articles {
		if err := p.processArticle(ctx, i+1, len(articles), article); err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipeline) processArticle(ctx context.Context, n, count int, article models.Article) error {
	id := utils.DocumentID(article.URL)

	scraped := p.scraper.Fetch(ctx, article.URL)

	contentForAI := article.Description
	if len(scraped.Text) > minScrapedChars {
		contentForAI = scraped.Text
	}

	author := article.Author
	if author == "" {
		author = scraped.Author
	}
	if author == "" {
		author = "Unknown"
	}

	imageURL := article.ImageURL
	if imageURL == "" {
		imageURL = scraped.ImageURL
	}

	category := categories.Categorize(article.Title, article.Description, contentForAI)

	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrSummarizeFailed, err)
	}

	p.log.Infof("processing article %d/%d: %s", n, count, article.Title)
	summary, err := p.summarizer.Summarize(ctx, article.Title, contentForAI)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSummarizeFailed, err)
	}

	record := &models.EnrichedRecord{
		Source:              article.Source,
		Title:               article.Title,
		Author:              author,
		URL:                 article.URL,
		OriginalDescription: article.Description,
		ImageURL:            imageURL,
		AISummary:           summary,
		Category:            category,
	}

	if p.store == nil {
		p.log.Warnf("no store configured, discarding summary for %s: %s", article.URL, summary)
		return nil
	}

	if err := p.store.SaveArticle(ctx, id, record); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	p.log.Infof("uploaded article %s (category %s)", id, category)

	return nil
}
