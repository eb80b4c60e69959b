package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type SearchConfig struct {
	QueryInTitle string   `yaml:"query_in_title"`
	Domains      []string `yaml:"domains"`
	Language     string   `yaml:"language"`
	SortBy       string   `yaml:"sort_by"`
	PageSize     int      `yaml:"page_size"`
}

type DBConfig struct {
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type AIConfig struct {
	Model           string `yaml:"model"`
	CallIntervalSec int    `yaml:"call_interval_sec"`
}

type LogicConfig struct {
	TimeoutSec    int    `yaml:"timeout_sec"`
	UserAgent     string `yaml:"user_agent"`
	RespectRobots bool   `yaml:"respect_robots"`
}

type PipelineConfig struct {
	DB     DBConfig     `yaml:"db"`
	Search SearchConfig `yaml:"search"`
	AI     AIConfig     `yaml:"ai"`
	Logic  LogicConfig  `yaml:"logic"`
}

// Keys holds the credentials read from the environment. MongoURI and
// GeminiAPIKey may be empty; the caller decides how each absence degrades.
type Keys struct {
	NewsAPIKey   string
	GeminiAPIKey string
	MongoURI     string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

func LoadConfig(path string) (*PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg PipelineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *PipelineConfig) applyDefaults() {
	if cfg.DB.Database == "" {
		cfg.DB.Database = "sports_news"
	}
	if cfg.DB.Collection == "" {
		cfg.DB.Collection = "sports_news"
	}
	if cfg.Search.Language == "" {
		cfg.Search.Language = "en"
	}
	if cfg.Search.SortBy == "" {
		cfg.Search.SortBy = "relevancy"
	}
	if cfg.Search.PageSize == 0 {
		cfg.Search.PageSize = 20
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if cfg.AI.CallIntervalSec == 0 {
		cfg.AI.CallIntervalSec = 13
	}
	if cfg.Logic.TimeoutSec == 0 {
		cfg.Logic.TimeoutSec = 10
	}
	if cfg.Logic.UserAgent == "" {
		cfg.Logic.UserAgent = defaultUserAgent
	}
}

func (cfg *PipelineConfig) ScrapeTimeout() time.Duration {
	return time.Duration(cfg.Logic.TimeoutSec) * time.Second
}

func (cfg *PipelineConfig) AICallInterval() time.Duration {
	return time.Duration(cfg.AI.CallIntervalSec) * time.Second
}

func LoadKeys() Keys {
	return Keys{
		NewsAPIKey:   os.Getenv("NEWS_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		MongoURI:     os.Getenv("MONGO_URI"),
	}
}
