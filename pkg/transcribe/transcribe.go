// Package transcribe is the client for the video transcription
// collaborator: a whisper-style service that downloads the video,
// extracts the audio track and returns the spoken text.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no transcription endpoint is set.
var ErrNotConfigured = errors.New("transcribe: endpoint not configured")

// Transcriber converts a video URL into spoken text.
type Transcriber interface {
	Transcribe(ctx context.Context, videoURL string) (string, error)
}

// Client calls a remote transcription service over HTTP.
type Client struct {
	endpoint string
	apiKey   string
	httpc    *http.Client
}

// NewClient returns a Client for endpoint. Transcription of a long video
// is slow, so the default timeout is generous.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{endpoint: endpoint, apiKey: apiKey, httpc: &http.Client{Timeout: timeout}}
}

// DirectURL rewrites a Google Drive sharing URL into its direct download
// form; other URLs pass through unchanged.
func DirectURL(raw string) string {
	if !strings.Contains(raw, "drive.google.com") {
		return raw
	}
	var fileID string
	if idx := strings.Index(raw, "file/d/"); idx >= 0 {
		rest := raw[idx+len("file/d/"):]
		fileID, _, _ = strings.Cut(rest, "/")
	} else if u, err := url.Parse(raw); err == nil {
		fileID = u.Query().Get("id")
	}
	if fileID == "" {
		return raw
	}
	return "https://drive.google.com/uc?export=download&id=" + fileID
}

// Transcribe posts the (rewritten) video URL to the service and returns
// the transcript text.
func (c *Client) Transcribe(ctx context.Context, videoURL string) (string, error) {
	if c == nil || c.endpoint == "" {
		return "", ErrNotConfigured
	}
	body, err := json.Marshal(map[string]string{"video_url": DirectURL(videoURL)})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcribe: status %d", resp.StatusCode)
	}
	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Text, nil
}
