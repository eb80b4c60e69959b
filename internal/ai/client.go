package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"news_digest/internal/utils"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// The persona is fixed: the model always answers as a two-sentence editor.
const systemInstruction = "You are a sports news editor. Summarize articles into exactly two concise, engaging sentences for a mobile app feed."

const maxErrorBodyChars = 512

// GeminiClient calls the Gemini generateContent REST endpoint. Failures
// propagate to the caller; there is no retry or output-length validation.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClient(apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Summarize sends the title and best-available text and returns the model's
// reply trimmed of surrounding whitespace.
func (c *GeminiClient) Summarize(ctx context.Context, title, description string) (string, error) {
	request := GenerateContentRequest{
		SystemInstruction: &Content{
			Parts: []Part{{Text: systemInstruction}},
		},
		Contents: []Content{
			{
				Role:  "user",
				Parts: []Part{{Text: fmt.Sprintf("Title: %s\nDescription: %s", title, description)}},
			},
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api error: status %d: %s", resp.StatusCode, utils.Truncate(string(body), maxErrorBodyChars))
	}

	var response GenerateContentResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse generate response: %w", err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	var summary strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		summary.WriteString(part.Text)
	}
	return strings.TrimSpace(summary.String()), nil
}
