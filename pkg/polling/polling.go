package polling

import (
	"context"
	"fmt"
	"sync"

	"github.com/sw33tLie/freedrops/pkg/offers"
	"github.com/sw33tLie/freedrops/pkg/platforms"
)

// Logger abstracts logging so callers can use logrus, stdlib log, or any
// other logger that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// nopLogger silently discards all messages.
type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}

// Config holds everything FetchAll needs.
type Config struct {
	Sources     []platforms.Source
	Concurrency int    // defaults to 4 if <= 0
	Log         Logger // optional; nil = no logging
}

// FetchAll fetches every source with a bounded worker pool and returns one
// normalized list per source, in source order. A source that fails or panics
// contributes an empty list; it never stops the others.
func FetchAll(ctx context.Context, cfg Config) [][]offers.Offer {
	log := cfg.Log
	if log == nil {
		log = nopLogger{}
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([][]offers.Offer, len(cfg.Sources))
	if len(cfg.Sources) == 0 {
		return results
	}

	idxChan := make(chan int, len(cfg.Sources))
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range idxChan {
				// Each worker writes only its own slot, no lock needed.
				results[idx] = fetchOne(ctx, cfg.Sources[idx], log)
			}
		}()
	}

	for i := range cfg.Sources {
		idxChan <- i
	}
	close(idxChan)
	wg.Wait()

	return results
}

// fetchOne runs a single source and normalizes its output.
func fetchOne(ctx context.Context, src platforms.Source, log Logger) (out []offers.Offer) {
	out = []offers.Offer{}
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("%s scraper panicked: %v", src.Name(), r)
			out = []offers.Offer{}
		}
	}()

	list, err := FetchOne(ctx, src)
	if err != nil {
		log.Warnf("Skipping %v", err)
		return out
	}
	log.Infof("%s: %d offers", src.Name(), len(list))
	return list
}

// FetchOne fetches a single source, returning its error instead of hiding it.
func FetchOne(ctx context.Context, src platforms.Source) ([]offers.Offer, error) {
	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}
	out := make([]offers.Offer, 0, len(raw))
	for _, r := range raw {
		if r.Platform == "" {
			r.Platform = src.Name()
		}
		out = append(out, offers.Normalize(r, src.DefaultCTA()))
	}
	return out, nil
}
