package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sw33tLie/freedrops/pkg/changes"
	"github.com/sw33tLie/freedrops/pkg/dashboard"
	"github.com/sw33tLie/freedrops/pkg/notify"
	"github.com/sw33tLie/freedrops/pkg/offers"
	"github.com/sw33tLie/freedrops/pkg/platforms"
	"github.com/sw33tLie/freedrops/pkg/polling"
	"github.com/sw33tLie/freedrops/pkg/storage"
)

// Config holds everything a single run needs. Nothing in here is read from
// the environment; the CLI builds it.
type Config struct {
	Sources     []platforms.Source
	Concurrency int
	Store       *storage.Store
	Location    *time.Location
	Clock       func() time.Time // defaults to time.Now

	Formatter notify.Formatter
	Notifiers []notify.Notifier

	// Dashboard is skipped when nil.
	Dashboard *dashboard.Options

	Log polling.Logger // optional
}

// Result is the outcome of a run.
type Result struct {
	Snapshot *offers.Snapshot
	Events   []changes.Event
	Message  *notify.Message
	Summary  string
	Notified []string // notifiers that delivered successfully
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}

// Run performs one scrape-diff-notify pass. State is written in dependency
// order (archive, summary, export, snapshot) before anything is delivered.
// Only persistence write failures are returned; source and delivery failures
// are logged.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	log := cfg.Log
	if log == nil {
		log = nopLogger{}
	}
	if cfg.Store == nil {
		return nil, errors.New("tracker: no store configured")
	}

	engine := changes.NewEngine(cfg.Store, cfg.Location)
	if cfg.Clock != nil {
		engine.Clock = cfg.Clock
	}

	previous := cfg.Store.LoadSnapshot()

	lists := polling.FetchAll(ctx, polling.Config{
		Sources:     cfg.Sources,
		Concurrency: cfg.Concurrency,
		Log:         log,
	})
	current := offers.Aggregate(lists...)
	log.Infof("Collected %d active offers across %d platforms", current.Len(), len(current.Platforms()))

	// Snapshot last, so a failed write leaves the previous one in place.
	events, err := engine.Run(previous, current)
	if err != nil {
		return nil, err
	}
	result := &Result{Snapshot: current, Events: events}

	msg, changed := cfg.Formatter.Format(events)
	if changed {
		result.Message = &msg
		result.Summary = notify.RenderHTML(msg)
		if err := cfg.Store.WriteSummary(result.Summary); err != nil {
			return nil, fmt.Errorf("writing summary: %w", err)
		}
	}

	if err := cfg.Store.SaveExport(current); err != nil {
		return nil, fmt.Errorf("saving export: %w", err)
	}
	if err := cfg.Store.SaveSnapshot(current); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	if cfg.Dashboard != nil {
		opts := *cfg.Dashboard
		opts.Now = engine.Now()
		if err := dashboard.Render(current, opts); err != nil {
			log.Errorf("Dashboard render failed: %v", err)
		}
	}

	if !changed {
		log.Infof("No changes at %s", engine.Now().Format("2006-01-02 15:04:05 MST"))
		return result, nil
	}

	for _, n := range cfg.Notifiers {
		err := n.Send(ctx, msg)
		switch {
		case err == nil:
			result.Notified = append(result.Notified, n.Name())
		case errors.Is(err, notify.ErrNotConfigured):
			log.Infof("%s not configured. Skipping send.", n.Name())
		default:
			log.Errorf("%s send error: %v", n.Name(), err)
		}
	}

	return result, nil
}
