package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"news_digest/internal/config"
	"news_digest/internal/models"
)

const defaultBaseURL = "https://newsapi.org/v2"

// Client queries the NewsAPI /v2/everything endpoint. One request per run,
// no retries.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type searchResponse struct {
	Status       string        `json:"status"`
	TotalResults int           `json:"totalResults"`
	Articles     []articleJSON `json:"articles"`
}

type articleJSON struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Everything returns the matching articles and the total result count
// reported by the API. A non-200 status is an error; an empty article list
// is not.
func (c *Client) Everything(ctx context.Context, query config.SearchConfig) ([]models.Article, int, error) {
	params := url.Values{}
	params.Set("qInTitle", query.QueryInTitle)
	params.Set("domains", strings.Join(query.Domains, ","))
	params.Set("language", query.Language)
	params.Set("sortBy", query.SortBy)
	params.Set("pageSize", strconv.Itoa(query.PageSize))
	params.Set("apiKey", c.apiKey)

	reqURL := c.baseURL + "/everything?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("search request failed with status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, 0, fmt.Errorf("failed to decode search response: %w", err)
	}

	articles := make([]models.Article, 0, len(body.Articles))
	for _, a := range body.Articles {
		desc := a.Description
		if desc == "" {
			desc = "No description provided."
		}
		articles = append(articles, models.Article{
			Source:      a.Source.Name,
			Title:       a.Title,
			URL:         a.URL,
			Description: desc,
			Author:      a.Author,
			ImageURL:    a.URLToImage,
		})
	}

	return articles, body.TotalResults, nil
}
