package transcribe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDirectURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{
			"https://drive.google.com/file/d/abc123/view?usp=sharing",
			"https://drive.google.com/uc?export=download&id=abc123",
		},
		{
			"https://drive.google.com/open?id=xyz789",
			"https://drive.google.com/uc?export=download&id=xyz789",
		},
		{
			"https://example.com/video.mp4",
			"https://example.com/video.mp4",
		},
	}
	for _, c := range cases {
		if got := DirectURL(c.in); got != c.want {
			t.Fatalf("DirectURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTranscribeNotConfigured(t *testing.T) {
	c := NewClient("", "", time.Second)
	if _, err := c.Transcribe(context.Background(), "https://example.com/v.mp4"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestTranscribeRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"I lost my debit card"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	text, err := c.Transcribe(context.Background(), "https://example.com/v.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "I lost my debit card" {
		t.Fatalf("text = %q", text)
	}
}

func TestTranscribeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	if _, err := c.Transcribe(context.Background(), "https://example.com/v.mp4"); err == nil {
		t.Fatalf("expected error on 502")
	}
}
