package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sw33tLie/freedrops/pkg/offers"
	"github.com/sw33tLie/freedrops/pkg/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.SubscriberDB) {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.OpenSubscribers(filepath.Join(dir, "subscribers.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, storage.New(dir), dir), db
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSubscribe(t *testing.T) {
	srv, db := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"preflight", http.MethodOptions, "", http.StatusNoContent},
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"bad json", http.MethodPost, "{", http.StatusBadRequest},
		{"bad email", http.MethodPost, `{"email":"nope"}`, http.StatusBadRequest},
		{"bad action", http.MethodPost, `{"email":"a@b.co","action":"maybe"}`, http.StatusBadRequest},
		{"subscribe default action", http.MethodPost, `{"email":" Someone@Example.com "}`, http.StatusOK},
		{"subscribe again", http.MethodPost, `{"email":"someone@example.com","action":"subscribe"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, "/api/subscribe", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("unexpected status\nwant: %d\ngot:  %d (%s)", tt.status, rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Fatalf("missing CORS header, got %q", got)
			}
		})
	}

	subs, err := db.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 || subs[0].Email != "someone@example.com" {
		t.Fatalf("unexpected subscribers %#v", subs)
	}

	rec := do(t, h, http.MethodPost, "/api/subscribe", `{"email":"someone@example.com","action":"unsubscribe"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unsubscribe failed: %d", rec.Code)
	}
	var msg apiMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Message != "Successfully unsubscribed someone@example.com" {
		t.Fatalf("unexpected message %q", msg.Message)
	}
	if n, _ := db.Count(context.Background()); n != 0 {
		t.Fatalf("expected empty list after unsubscribe, got %d", n)
	}
}

func TestDrops(t *testing.T) {
	srv, _ := newTestServer(t)

	snap := offers.NewSnapshot()
	snap.Add(offers.Offer{Platform: "GOG", Title: "G", Status: offers.StatusFreshDrop, Link: "https://gog.com/g"})
	if err := srv.Store.SaveExport(snap); err != nil {
		t.Fatal(err)
	}

	rec := do(t, srv.Handler(), http.MethodGet, "/api/drops", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var got []offers.Offer
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "G" || got[0].Platform != "GOG" {
		t.Fatalf("unexpected drops %#v", got)
	}
}

func TestDropsMissingExport(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodGet, "/api/drops", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestStaticDashboard(t *testing.T) {
	srv, _ := newTestServer(t)
	if err := os.WriteFile(filepath.Join(srv.StaticDir, "dashboard.html"), []byte("<h1>drops</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec := do(t, srv.Handler(), http.MethodGet, "/dashboard.html", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "drops") {
		t.Fatalf("unexpected static response %d %q", rec.Code, rec.Body.String())
	}
}
