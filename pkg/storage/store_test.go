package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sw33tLie/freedrops/pkg/changes"
	"github.com/sw33tLie/freedrops/pkg/offers"
)

func sampleSnapshot() *offers.Snapshot {
	snap := offers.NewSnapshot()
	snap.Add(offers.Offer{Platform: "Steam", Title: "S", Status: offers.StatusFreshDrop, CTA: "Claim directly on Steam"})
	snap.Add(offers.Offer{Platform: "Epic Games Store", Title: "E", Status: offers.StatusFreshDrop, Link: "https://store.epicgames.com/p/e"})
	snap.Add(offers.Offer{Platform: "Steam", Title: "T", Status: offers.StatusFreshDrop})
	return snap
}

func TestSnapshotRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	snap := sampleSnapshot()

	if err := st.SaveSnapshot(snap); err != nil {
		t.Fatal(err)
	}
	got := st.LoadSnapshot()
	if !reflect.DeepEqual(got.Platforms(), []string{"Steam", "Epic Games Store"}) {
		t.Fatalf("unexpected platform order: %v", got.Platforms())
	}
	if !reflect.DeepEqual(got.Flat(), snap.Flat()) {
		t.Fatalf("unexpected offers: %#v", got.Flat())
	}
}

func TestLoadSnapshotDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	if got := st.LoadSnapshot(); got.Len() != 0 {
		t.Fatalf("missing file should load empty, got %d offers", got.Len())
	}

	if err := os.WriteFile(st.SnapshotPath(), []byte(`{"GOG": [`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := st.LoadSnapshot(); got.Len() != 0 || len(got.Platforms()) != 0 {
		t.Fatalf("corrupt file should load empty, got %#v", got.Flat())
	}
}

func TestSaveExportIsFlatList(t *testing.T) {
	st := New(t.TempDir())
	snap := sampleSnapshot()
	if err := st.SaveExport(snap); err != nil {
		t.Fatal(err)
	}
	got, err := st.LoadExport()
	if err != nil {
		t.Fatal(err)
	}
	titles := []string{}
	for _, o := range got {
		titles = append(titles, o.Title)
	}
	if !reflect.DeepEqual(titles, []string{"S", "T", "E"}) {
		t.Fatalf("unexpected export order: %v", titles)
	}
}

func TestSaveExportEmptySnapshotWritesArray(t *testing.T) {
	st := New(t.TempDir())
	if err := st.SaveExport(offers.NewSnapshot()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(st.ExportPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]\n" {
		t.Fatalf("expected an empty JSON array, got %q", data)
	}
}

func TestArchiveRoundTripAndDegrade(t *testing.T) {
	st := New(t.TempDir())

	if got := st.LoadArchive(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil archive, got %#v", got)
	}

	in := changes.Archive{"2026-10": {"B", "A"}, "2026-09": {"Z"}}
	if err := st.SaveArchive(in); err != nil {
		t.Fatal(err)
	}
	if got := st.LoadArchive(); !reflect.DeepEqual(got, in) {
		t.Fatalf("unexpected archive: %#v", got)
	}

	if err := os.WriteFile(st.ArchivePath(), []byte(`["not", "an", "object"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := st.LoadArchive(); len(got) != 0 {
		t.Fatalf("corrupt archive should load empty, got %#v", got)
	}
}

func TestWriteFailurePropagatesAndKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.SaveSnapshot(sampleSnapshot()); err != nil {
		t.Fatal(err)
	}

	// A directory in place of the data dir makes every write fail.
	st.Dir = filepath.Join(st.SnapshotPath(), "nested")
	if err := st.SaveSnapshot(offers.NewSnapshot()); err == nil {
		t.Fatalf("expected write error")
	}

	st.Dir = dir
	if got := st.LoadSnapshot(); got.Len() != 3 {
		t.Fatalf("previous snapshot must survive a failed write, got %d offers", got.Len())
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestSummary(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.ReadSummary(); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if err := st.WriteSummary("hello"); err != nil {
		t.Fatal(err)
	}
	got, err := st.ReadSummary()
	if err != nil || got != "hello" {
		t.Fatalf("unexpected summary %q (%v)", got, err)
	}
}
