package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sw33tLie/freedrops/internal/utils"
	"github.com/sw33tLie/freedrops/pkg/changes"
	"github.com/sw33tLie/freedrops/pkg/offers"
)

const (
	DefaultSnapshotFile = "game_data.json"
	DefaultExportFile   = "drops.json"
	DefaultArchiveFile  = "monthly_archive.json"
	DefaultSummaryFile  = "drop_summary.txt"
)

// Store owns the on-disk state of the tracker: the grouped snapshot, the flat
// export read by the dashboard, the monthly archive and the last run summary.
type Store struct {
	Dir          string
	SnapshotFile string
	ExportFile   string
	ArchiveFile  string
	SummaryFile  string
}

// New returns a Store rooted at dir with the default file names.
func New(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{
		Dir:          dir,
		SnapshotFile: DefaultSnapshotFile,
		ExportFile:   DefaultExportFile,
		ArchiveFile:  DefaultArchiveFile,
		SummaryFile:  DefaultSummaryFile,
	}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.Dir, name)
}

// SnapshotPath returns the location of the grouped snapshot.
func (s *Store) SnapshotPath() string { return s.path(s.SnapshotFile) }

// ExportPath returns the location of the flat export.
func (s *Store) ExportPath() string { return s.path(s.ExportFile) }

// ArchivePath returns the location of the monthly archive.
func (s *Store) ArchivePath() string { return s.path(s.ArchiveFile) }

// SummaryPath returns the location of the last run summary.
func (s *Store) SummaryPath() string { return s.path(s.SummaryFile) }

// LoadSnapshot reads the previous snapshot. A missing or unreadable file yields
// an empty snapshot.
func (s *Store) LoadSnapshot() *offers.Snapshot {
	snap := offers.NewSnapshot()
	if err := readJSON(s.SnapshotPath(), snap); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			utils.Log.Warnf("Could not load snapshot %s, starting empty: %v", s.SnapshotPath(), err)
		}
		return offers.NewSnapshot()
	}
	return snap
}

// SaveSnapshot atomically replaces the grouped snapshot.
func (s *Store) SaveSnapshot(snap *offers.Snapshot) error {
	if snap == nil {
		snap = offers.NewSnapshot()
	}
	return writeJSON(s.SnapshotPath(), snap)
}

// ExportFlat returns every offer of snap as a single list.
func (s *Store) ExportFlat(snap *offers.Snapshot) []offers.Offer {
	return snap.Flat()
}

// SaveExport atomically replaces the flat export.
func (s *Store) SaveExport(snap *offers.Snapshot) error {
	return writeJSON(s.ExportPath(), s.ExportFlat(snap))
}

// LoadExport reads the flat export back.
func (s *Store) LoadExport() ([]offers.Offer, error) {
	var out []offers.Offer
	if err := readJSON(s.ExportPath(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadArchive reads the monthly archive. A missing or unreadable file yields
// an empty archive.
func (s *Store) LoadArchive() changes.Archive {
	archive := changes.Archive{}
	if err := readJSON(s.ArchivePath(), &archive); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			utils.Log.Warnf("Could not load archive %s, starting empty: %v", s.ArchivePath(), err)
		}
		return changes.Archive{}
	}
	if archive == nil {
		archive = changes.Archive{}
	}
	return archive
}

// SaveArchive atomically replaces the monthly archive.
func (s *Store) SaveArchive(archive changes.Archive) error {
	if archive == nil {
		archive = changes.Archive{}
	}
	return writeJSON(s.ArchivePath(), archive)
}

// WriteSummary atomically replaces the run summary.
func (s *Store) WriteSummary(text string) error {
	return writeFileAtomic(s.SummaryPath(), []byte(text))
}

// ReadSummary returns the last run summary.
func (s *Store) ReadSummary() (string, error) {
	data, err := os.ReadFile(s.SummaryPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}
