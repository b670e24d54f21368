package offers

import (
	"strings"
)

// StatusFreshDrop marks an active, claimable offer.
const StatusFreshDrop = "Fresh Drop"

// Offer is a single normalized freebie listing.
type Offer struct {
	Platform string `json:"platform"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Banner   string `json:"banner"`
	Link     string `json:"link"`
	CTA      string `json:"cta,omitempty"`
}

// RawOffer is what a source hands over before normalization. Any field may be empty.
type RawOffer struct {
	Platform string
	Title    string
	Status   string
	Banner   string
	Link     string
	CTA      string
}

var expiryMarkers = []string{"expired", "ended", "no longer", "unavailable"}

// Normalize canonicalizes a raw record. Links that are not absolute http(s)
// URLs are dropped, and an offer left without a link gets defaultCTA unless it
// already carries a call-to-action.
func Normalize(raw RawOffer, defaultCTA string) Offer {
	o := Offer{
		Platform: raw.Platform,
		Title:    raw.Title,
		Status:   raw.Status,
		Banner:   raw.Banner,
		Link:     strings.TrimSpace(raw.Link),
		CTA:      raw.CTA,
	}
	if !IsUsableLink(o.Link) {
		o.Link = ""
	}
	if o.Link == "" && o.CTA == "" && defaultCTA != "" {
		o.CTA = defaultCTA
	}
	return o
}

// IsUsableLink reports whether link is an absolute http or https URL.
func IsUsableLink(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}

// IsExpired reports whether a status label marks the offer as no longer claimable.
func IsExpired(status string) bool {
	s := strings.ToLower(status)
	for _, m := range expiryMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// identityKey is the per-platform dedup key.
func identityKey(platform, title string) string {
	return platform + "|" + strings.ToLower(title)
}
