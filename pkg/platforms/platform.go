package platforms

import (
	"context"

	"github.com/sw33tLie/freedrops/pkg/offers"
)

// Source is a single storefront scraper. Fetch returns the raw listings found
// on the storefront; the caller normalizes them with DefaultCTA and turns any
// error into an empty contribution.
type Source interface {
	Name() string
	// DefaultCTA is shown for offers that come without a usable link.
	DefaultCTA() string
	Fetch(ctx context.Context) ([]offers.RawOffer, error)
}
