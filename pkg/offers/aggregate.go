package offers

import "strings"

// OtherPlatform groups offers whose source left the platform blank.
const OtherPlatform = "Other"

// Aggregate merges per-source offer lists into a fresh snapshot. Expired offers
// are discarded, blank titles are skipped and duplicates by platform and
// case-insensitive title keep their first occurrence.
func Aggregate(lists ...[]Offer) *Snapshot {
	snap := NewSnapshot()
	seen := make(map[string]bool)

	for _, list := range lists {
		for _, o := range list {
			if strings.TrimSpace(o.Title) == "" {
				continue
			}
			if IsExpired(o.Status) {
				continue
			}
			if strings.TrimSpace(o.Platform) == "" {
				o.Platform = OtherPlatform
			}

			key := identityKey(o.Platform, o.Title)
			if seen[key] {
				continue
			}
			seen[key] = true
			snap.Add(o)
		}
	}
	return snap
}
