// Package llm is a minimal chat-completions client for the hosted model
// API that backs classification, translation and feedback analysis.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrNoAPIKey is returned when the client has no API key configured;
// callers are expected to degrade to their local fallbacks.
var ErrNoAPIKey = errors.New("llm: api key not configured")

const defaultBaseURL = "https://api.groq.com/openai/v1"
const defaultModel = "llama3-8b-8192"

// Client calls a chat-completions endpoint. Outbound calls are paced by a
// token-bucket limiter so a burst of queue traffic cannot blow the
// provider's quota.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
	lim     *rate.Limiter
}

// Options configures a Client; zero values pick sensible defaults.
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	// RPS and Burst pace outbound calls; RPS <= 0 disables pacing.
	RPS   float64
	Burst int
}

// New builds a Client from opts.
func New(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	var lim *rate.Limiter
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	return &Client{
		baseURL: base,
		apiKey:  opts.APIKey,
		model:   model,
		httpc:   &http.Client{Timeout: timeout},
		lim:     lim,
	}
}

// Enabled reports whether the client has credentials to make calls.
func (c *Client) Enabled() bool { return c != nil && c.apiKey != "" }

// Message is one turn of a chat exchange.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends messages and returns the first choice's content, trimmed.
func (c *Client) Chat(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if !c.Enabled() {
		return "", ErrNoAPIKey
	}
	if c.lim != nil {
		if err := c.lim.Wait(ctx); err != nil {
			return "", err
		}
	}

	msgs := make([]Message, 0, 2)
	if system != "" {
		msgs = append(msgs, Message{Role: "system", Content: system})
	}
	msgs = append(msgs, Message{Role: "user", Content: user})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: 0.1,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("llm: %s (status %d)", out.Error.Message, resp.StatusCode)
		}
		return "", fmt.Errorf("llm: status %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("llm: empty choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
