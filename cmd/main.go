package main

import (
	"context"
	"os/signal"
	"syscall"

	"news_digest/internal/ai"
	"news_digest/internal/app"
	"news_digest/internal/config"
	"news_digest/internal/db"
	"news_digest/internal/news"
	"news_digest/internal/scrape"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	keys := config.LoadKeys()
	if keys.NewsAPIKey == "" {
		log.Fatal("NEWS_API_KEY is not set")
	}

	var store app.Store
	if keys.MongoURI != "" {
		mongoDB, err := db.NewMongoDB(keys.MongoURI, cfg.DB)
		if err != nil {
			log.Fatalf("failed to initialize store: %v", err)
		}
		defer mongoDB.Close(context.Background())
		store = mongoDB
	} else {
		log.Warn("store credentials not found, skipping DB upload")
	}

	var summarizer app.Summarizer
	if keys.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(keys.GeminiAPIKey, cfg.AI.Model)
		if err != nil {
			log.Fatalf("failed to initialize AI model: %v", err)
		}
		summarizer = client
	}

	searchClient := news.NewClient(keys.NewsAPIKey)
	scraper := scrape.NewScraper(cfg.Logic.UserAgent, cfg.ScrapeTimeout(), cfg.Logic.RespectRobots, log)
	limiter := rate.NewLimiter(rate.Every(cfg.AICallInterval()), 1)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := app.New(cfg, searchClient, scraper, summarizer, store, limiter, log)
	if err := pipeline.Run(ctx); err != nil {
		log.Fatalf("fatal error during processing: %v", err)
	}

	log.Info("run finished")
}
