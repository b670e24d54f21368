package changes

import (
	"sort"
	"time"

	"github.com/sw33tLie/freedrops/pkg/offers"
)

// Diff compares two snapshots platform by platform and records newly seen
// titles in the archive bucket for now.
//
// Platforms are visited in current-snapshot order, followed by platforms only
// present in previous; a platform missing on one side counts as empty there,
// so a source that went silent reports all of its titles as expired. Within a
// platform, expired titles come first, then new ones, each sorted
// lexicographically. Titles are compared exactly as stored.
//
// The given archive is never modified. When no title is added the returned
// archive is the input itself.
func Diff(previous, current *offers.Snapshot, archive Archive, now time.Time) ([]Event, Archive) {
	var events []Event
	month := MonthKey(now)
	out := archive
	cloned := false

	for _, platform := range platformUnion(previous, current) {
		oldTitles := previous.Titles(platform)
		newTitles := current.Titles(platform)

		for _, title := range sortedDifference(oldTitles, newTitles) {
			events = append(events, ExpiredOffer(platform, title))
		}

		for _, title := range sortedDifference(newTitles, oldTitles) {
			events = append(events, NewOffer(platform, title))
			if out.Has(month, title) {
				continue
			}
			if !cloned {
				out = archive.Clone()
				cloned = true
			}
			out.Add(month, title)
		}
	}

	return events, out
}

func platformUnion(previous, current *offers.Snapshot) []string {
	platforms := current.Platforms()
	for _, p := range previous.Platforms() {
		if !current.Has(p) {
			platforms = append(platforms, p)
		}
	}
	return platforms
}

// sortedDifference returns a − b in lexicographic order.
func sortedDifference(a, b map[string]struct{}) []string {
	var out []string
	for t := range a {
		if _, ok := b[t]; !ok {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
