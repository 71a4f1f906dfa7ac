// Package notify implements the outbound notification dispatcher. It turns a
// saved location into a Discord-style webhook embed and performs exactly one
// POST per dispatch: no retries, no queue. Failures are reported to the
// caller as a typed *DispatchError carrying either the non-success status
// code or the underlying transport error, so "saved but not notified" stays
// distinguishable from "not saved at all" upstream.
//
// All user-supplied text (names, notes, world/biome strings) flows through
// encoding/json, which escapes quotes and control characters, so the payload
// stays well-formed regardless of content.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/outpostlabs/go-location-backend/internal/config"
	"github.com/outpostlabs/go-location-backend/internal/domain"
)

const userAgent = "go-location-backend/0.1"

// dispatches counts webhook attempts by outcome ("sent" or "failed").
var dispatches = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "webhook_dispatches_total",
		Help: "Total number of webhook dispatch attempts by outcome.",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(dispatches)
}

// DispatchError describes a failed dispatch attempt. Exactly one of
// StatusCode (non-2xx response) or Err (transport failure, including
// timeouts) is meaningful.
type DispatchError struct {
	StatusCode int
	Err        error
}

// Error renders the failure for logs.
func (e *DispatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("webhook dispatch: %v", e.Err)
	}
	return fmt.Sprintf("webhook returned status %d", e.StatusCode)
}

// Unwrap exposes the transport error for errors.Is/As checks.
func (e *DispatchError) Unwrap() error { return e.Err }

// Discord webhook envelope. One embed per dispatch.
type payload struct {
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []embed `json:"embeds"`
}

type embed struct {
	Title     string     `json:"title"`
	Color     int        `json:"color"`
	Thumbnail *thumbnail `json:"thumbnail,omitempty"`
	Fields    []field    `json:"fields"`
	Footer    *footer    `json:"footer,omitempty"`
	Timestamp string     `json:"timestamp"`
}

type thumbnail struct {
	URL string `json:"url"`
}

type footer struct {
	Text string `json:"text"`
}

type field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Webhook dispatches location notifications to a configured webhook URL.
// The zero value is unusable; construct with NewWebhook. Safe for concurrent
// use.
type Webhook struct {
	cfg    config.WebhookConfig
	client *http.Client
}

// NewWebhook builds a dispatcher from configuration. When no destination is
// configured the dispatcher still constructs, but Enabled reports false and
// Send refuses to run; callers surface that state as "notification disabled".
func NewWebhook(cfg config.WebhookConfig) *Webhook {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a usable destination URL is configured.
func (w *Webhook) Enabled() bool { return w.cfg.Configured() }

// Send serializes loc (plus the optional free-text note) into the embed
// payload and POSTs it once. A 200 or 204 response is success; any other
// status, or a transport failure, returns a *DispatchError. The request is
// bounded by the configured timeout and honors ctx cancellation.
func (w *Webhook) Send(ctx context.Context, loc *domain.Location, note string) error {
	if !w.Enabled() {
		return &DispatchError{Err: fmt.Errorf("no webhook URL configured")}
	}

	body, err := json.Marshal(w.buildPayload(loc, note))
	if err != nil {
		return &DispatchError{Err: fmt.Errorf("encode payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return &DispatchError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		dispatches.WithLabelValues("failed").Inc()
		return &DispatchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		dispatches.WithLabelValues("failed").Inc()
		return &DispatchError{StatusCode: resp.StatusCode}
	}
	dispatches.WithLabelValues("sent").Inc()
	return nil
}

// buildPayload assembles the webhook envelope: optional username/avatar at
// the top level and a single embed with Player/World/Coordinates/Biome fields
// plus an optional Note, cosmetic fields from configuration, and an RFC3339
// timestamp.
func (w *Webhook) buildPayload(loc *domain.Location, note string) payload {
	fields := []field{
		{Name: "Player", Value: loc.OwnerName, Inline: true},
		{Name: "World", Value: loc.World, Inline: true},
		{Name: "Coordinates", Value: fmt.Sprintf("X: %d\nY: %d\nZ: %d", loc.X, loc.Y, loc.Z)},
		{Name: "Biome", Value: loc.Biome},
	}
	if note != "" {
		fields = append(fields, field{Name: "Note", Value: note})
	}

	e := embed{
		Title:     w.cfg.EmbedTitle,
		Color:     w.cfg.EmbedColor,
		Fields:    fields,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if w.cfg.EmbedThumbnail != "" {
		e.Thumbnail = &thumbnail{URL: w.cfg.EmbedThumbnail}
	}
	if w.cfg.EmbedFooter != "" {
		e.Footer = &footer{Text: w.cfg.EmbedFooter}
	}

	return payload{
		Username:  w.cfg.Username,
		AvatarURL: w.cfg.AvatarURL,
		Embeds:    []embed{e},
	}
}
