package urlcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// BrokenLinkEvent is published before the run aborts on a broken external
// link, so downstream tooling (issue creation, dashboards) can pick it up.
type BrokenLinkEvent struct {
	URL        string    `json:"url"`
	LinkID     string    `json:"link_id"`
	Status     int       `json:"status"` // HTTP status code, 0 for non-HTTP errors
	Error      string    `json:"error"`
	SourcePath string    `json:"source_path"`
	RunID      string    `json:"run_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher delivers broken-link events. Publishing is best-effort: a
// publish failure is logged, never escalated, the validation error still
// aborts the run.
type Publisher interface {
	PublishBrokenLink(ctx context.Context, event *BrokenLinkEvent)
	Close() error
}

// NoopPublisher is used when event publishing is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishBrokenLink(context.Context, *BrokenLinkEvent) {}
func (NoopPublisher) Close() error                                       { return nil }

// NATSPublisher publishes broken-link events to a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to the NATS server.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	slog.Info("NATS broken-link publisher connected", "url", url, "subject", subject)
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

func (p *NATSPublisher) PublishBrokenLink(_ context.Context, event *BrokenLinkEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Warn("Failed to encode broken-link event", "error", err)
		return
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		slog.Warn("Failed to publish broken-link event", "url", event.URL, "error", err)
		return
	}
	_ = p.conn.Flush()
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}
