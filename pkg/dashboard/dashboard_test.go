package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sw33tLie/freedrops/pkg/offers"
)

func testSnapshot() *offers.Snapshot {
	snap := offers.NewSnapshot()
	snap.Add(offers.Offer{Platform: "Epic Games Store", Title: "Linked <Game>", Status: offers.StatusFreshDrop, Link: "https://store.epicgames.com/p/linked"})
	snap.Add(offers.Offer{Platform: "Steam", Title: "No Link", Status: offers.StatusFreshDrop, CTA: "Claim directly on Steam"})
	snap.Add(offers.Offer{Platform: "Ubisoft", Title: "Bare", Status: offers.StatusFreshDrop})
	return snap
}

var renderTime = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

func TestRenderFallback(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "site", "dashboard.html")

	err := Render(testSnapshot(), Options{
		TemplatePath: filepath.Join(dir, "missing.html"),
		OutputPath:   out,
		Now:          renderTime,
	})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	page := string(data)
	for _, want := range []string{
		"<h1>Free Game Tracker</h1>",
		"2026-10-15 10:00 UTC",
		`<a href="https://store.epicgames.com/p/linked" target="_blank"><strong>Linked &lt;Game&gt;</strong></a>`,
		"<small>(epicgames.com)</small>",
		"<em>(Claim directly on Steam)</em>",
		"<em>(Claim directly on the Ubisoft website)</em>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page is missing %q\n%s", want, page)
		}
	}
}

func TestRenderTemplate(t *testing.T) {
	dir := t.TempDir()
	tplPath := filepath.Join(dir, "template_dashboard.html")
	if err := os.WriteFile(tplPath, []byte(`<p>Updated {{TIMESTAMP}}</p><main>{{GAME_BLOCKS}}</main>`), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "dashboard.html")

	if err := Render(testSnapshot(), Options{TemplatePath: tplPath, OutputPath: out, Now: renderTime}); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(out)
	page := string(data)
	if !strings.HasPrefix(page, "<p>Updated 2026-10-15 10:00 UTC</p><main><h2>Epic Games Store</h2>") {
		t.Fatalf("unexpected page:\n%s", page)
	}
	if strings.Contains(page, "{{") {
		t.Fatalf("placeholders left in page:\n%s", page)
	}
}

func TestStoreDomain(t *testing.T) {
	tests := map[string]string{
		"https://store.epicgames.com/p/x":     "epicgames.com",
		"https://www.gog.com/en/game/x":       "gog.com",
		"https://gaming.amazon.co.uk/claim/x": "amazon.co.uk",
		"not a url":                           "",
		"https://localhost/x":                 "",
	}
	for in, want := range tests {
		if got := StoreDomain(in); got != want {
			t.Errorf("StoreDomain(%q) = %q, want %q", in, got, want)
		}
	}
}
