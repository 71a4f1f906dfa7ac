package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/outpostlabs/go-location-backend/internal/config"
	"github.com/outpostlabs/go-location-backend/internal/domain"
)

func testLocation() *domain.Location {
	return &domain.Location{
		OwnerID:   "o1",
		ID:        1,
		OwnerName: "Olwen",
		Name:      "Base",
		X:         10, Y: 64, Z: -5,
		World:     "overworld",
		Biome:     "PLAINS",
		CreatedAt: time.Now().UTC(),
	}
}

func webhookCfg(url string) config.WebhookConfig {
	return config.WebhookConfig{
		URL:            url,
		Username:       "Location Bot",
		AvatarURL:      "https://example.com/avatar.png",
		Timeout:        2 * time.Second,
		EmbedTitle:     "Player Location",
		EmbedColor:     5814783,
		EmbedFooter:    "test footer",
		EmbedThumbnail: "https://example.com/thumb.png",
	}
}

func TestSend_Success204(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("payload not valid JSON: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w := NewWebhook(webhookCfg(srv.URL))
	if !w.Enabled() {
		t.Fatalf("dispatcher should be enabled")
	}
	if err := w.Send(context.Background(), testLocation(), "near the river"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if got.Username != "Location Bot" || got.AvatarURL == "" {
		t.Fatalf("username/avatar missing: %+v", got)
	}
	if len(got.Embeds) != 1 {
		t.Fatalf("expected exactly one embed, got %d", len(got.Embeds))
	}
	e := got.Embeds[0]
	if e.Title != "Player Location" || e.Color != 5814783 {
		t.Fatalf("embed cosmetics wrong: %+v", e)
	}
	if e.Thumbnail == nil || e.Footer == nil || e.Footer.Text != "test footer" {
		t.Fatalf("thumbnail/footer missing: %+v", e)
	}
	if _, err := time.Parse(time.RFC3339, e.Timestamp); err != nil {
		t.Fatalf("timestamp not RFC3339: %q", e.Timestamp)
	}
	wantFields := []string{"Player", "World", "Coordinates", "Biome", "Note"}
	if len(e.Fields) != len(wantFields) {
		t.Fatalf("expected %d fields, got %+v", len(wantFields), e.Fields)
	}
	for i, name := range wantFields {
		if e.Fields[i].Name != name {
			t.Fatalf("field %d: expected %q, got %q", i, name, e.Fields[i].Name)
		}
	}
	if !strings.Contains(e.Fields[2].Value, "X: 10") || !strings.Contains(e.Fields[2].Value, "Z: -5") {
		t.Fatalf("coordinates field malformed: %q", e.Fields[2].Value)
	}
}

func TestSend_NoteOmittedWhenEmpty(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK) // 200 counts as success too
	}))
	defer srv.Close()

	w := NewWebhook(webhookCfg(srv.URL))
	if err := w.Send(context.Background(), testLocation(), ""); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(got.Embeds) != 1 || len(got.Embeds[0].Fields) != 4 {
		t.Fatalf("expected 4 fields without a note, got %+v", got.Embeds)
	}
}

func TestSend_HostileTextSurvivesEncoding(t *testing.T) {
	// A note with the JSON quoting character, a newline, and a control char
	// must round-trip through a parser without structural corruption.
	hostile := "say \"hello\",\nthen\tleave\x07"

	var decoded payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &decoded); err != nil {
			t.Errorf("hostile payload broke JSON: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	loc := testLocation()
	loc.OwnerName = "quo\"te"
	loc.World = "over\nworld"

	w := NewWebhook(webhookCfg(srv.URL))
	if err := w.Send(context.Background(), loc, hostile); err != nil {
		t.Fatalf("Send: %v", err)
	}
	e := decoded.Embeds[0]
	if e.Fields[0].Value != "quo\"te" || e.Fields[1].Value != "over\nworld" {
		t.Fatalf("user text corrupted: %+v", e.Fields)
	}
	if e.Fields[4].Value != hostile {
		t.Fatalf("note corrupted: %q != %q", e.Fields[4].Value, hostile)
	}
}

func TestSend_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	w := NewWebhook(webhookCfg(srv.URL))
	err := w.Send(context.Background(), testLocation(), "")
	var derr *DispatchError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DispatchError, got %T %v", err, err)
	}
	if derr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 in error, got %d", derr.StatusCode)
	}
	if !strings.Contains(derr.Error(), "429") {
		t.Fatalf("error text should carry the status: %q", derr.Error())
	}
}

func TestSend_TimeoutReportsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := webhookCfg(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	w := NewWebhook(cfg)

	start := time.Now()
	err := w.Send(context.Background(), testLocation(), "")
	var derr *DispatchError
	if !errors.As(err, &derr) || derr.Err == nil {
		t.Fatalf("expected transport *DispatchError, got %T %v", err, err)
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Fatalf("Send blocked past its timeout: %v", elapsed)
	}
}

func TestSend_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	w := NewWebhook(webhookCfg(srv.URL))
	if err := w.Send(ctx, testLocation(), ""); err == nil {
		t.Fatalf("expected error on cancelled context")
	}
}

func TestDisabledDispatcher(t *testing.T) {
	w := NewWebhook(config.WebhookConfig{URL: "", Timeout: time.Second})
	if w.Enabled() {
		t.Fatalf("empty URL must disable the dispatcher")
	}
	if err := w.Send(context.Background(), testLocation(), ""); err == nil {
		t.Fatalf("Send on a disabled dispatcher must fail")
	}

	placeholder := config.WebhookConfig{
		URL:     "https://discord.com/api/webhooks/YOUR_WEBHOOK_ID/YOUR_WEBHOOK_TOKEN",
		Timeout: time.Second,
	}
	if NewWebhook(placeholder).Enabled() {
		t.Fatalf("placeholder URL must disable the dispatcher")
	}
}
