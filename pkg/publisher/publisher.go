// Package publisher delivers completed tickets to downstream consumers:
// an HTTP webhook (the demo dashboard) and optionally a Kafka topic.
// Publishing is fire-and-forget; a sink failure is logged and never
// affects the submitter's response.
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/bytebufferpool"

	"triagedesk/pkg/logger"
	"triagedesk/pkg/models"
)

// Sink accepts one ticket event.
type Sink interface {
	Publish(ctx context.Context, t *models.Ticket) error
	Close() error
}

// Publisher fans a ticket out to its configured sinks.
type Publisher struct {
	sinks []Sink
}

// New builds a Publisher over the given sinks; nil sinks are skipped.
func New(sinks ...Sink) *Publisher {
	p := &Publisher{}
	for _, s := range sinks {
		if s != nil {
			p.sinks = append(p.sinks, s)
		}
	}
	return p
}

// Enabled reports whether any sink is configured.
func (p *Publisher) Enabled() bool { return p != nil && len(p.sinks) > 0 }

// Publish sends the ticket to every sink, logging failures.
func (p *Publisher) Publish(ctx context.Context, t *models.Ticket) {
	if !p.Enabled() || t == nil {
		return
	}
	for _, s := range p.sinks {
		if err := s.Publish(ctx, t); err != nil {
			logger.Error("ticket_publish_failed", "ticket_id", t.TicketID, "error", err)
		}
	}
}

// Close closes all sinks.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	for _, s := range p.sinks {
		if err := s.Close(); err != nil {
			logger.Warn("publisher_sink_close_failed", "error", err)
		}
	}
}

// Hook adapts the publisher to the intake worker's ticket hook.
func (p *Publisher) Hook() func(req *models.QueryRequest, res models.TicketResult) {
	return func(req *models.QueryRequest, res models.TicketResult) {
		if !res.Success || res.Ticket == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		p.Publish(ctx, res.Ticket)
	}
}

// WebhookSink POSTs ticket JSON to a downstream URL.
type WebhookSink struct {
	url   string
	httpc *http.Client
}

// NewWebhookSink returns a sink for url, or nil when url is empty.
func NewWebhookSink(url string, timeout time.Duration) *WebhookSink {
	if url == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookSink{url: url, httpc: &http.Client{Timeout: timeout}}
}

// Publish encodes the ticket into a pooled buffer and POSTs it.
func (w *WebhookSink) Publish(ctx context.Context, t *models.Ticket) error {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	if err := json.NewEncoder(bb).Encode(t); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(bb.B))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("publisher: webhook status %d", resp.StatusCode)
	}
	return nil
}

func (w *WebhookSink) Close() error { return nil }
