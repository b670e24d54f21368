package changes

import (
	"fmt"
	"time"

	"github.com/sw33tLie/freedrops/pkg/offers"
)

// ArchiveStore persists the monthly archive between runs. LoadArchive must
// degrade to an empty archive on read failures; SaveArchive errors are fatal.
type ArchiveStore interface {
	LoadArchive() Archive
	SaveArchive(Archive) error
}

// Engine runs Diff against the persisted archive.
type Engine struct {
	Store    ArchiveStore
	Clock    func() time.Time // defaults to time.Now
	Location *time.Location   // defaults to UTC
}

// NewEngine returns an Engine keyed to the given location.
func NewEngine(store ArchiveStore, loc *time.Location) *Engine {
	return &Engine{Store: store, Clock: time.Now, Location: loc}
}

// Now returns the engine's current time in its location.
func (e *Engine) Now() time.Time {
	clock := e.Clock
	if clock == nil {
		clock = time.Now
	}
	loc := e.Location
	if loc == nil {
		loc = time.UTC
	}
	return clock().In(loc)
}

// Run diffs previous against current, then saves the archive. The archive is
// written even when nothing changed so the file exists from the first run on.
func (e *Engine) Run(previous, current *offers.Snapshot) ([]Event, error) {
	archive := e.Store.LoadArchive()
	if archive == nil {
		archive = Archive{}
	}

	events, updated := Diff(previous, current, archive, e.Now())
	if err := e.Store.SaveArchive(updated); err != nil {
		return nil, fmt.Errorf("saving archive: %w", err)
	}
	return events, nil
}
