package changes

import "time"

// MonthKeyLayout formats the archive bucket for a point in time.
const MonthKeyLayout = "2006-01"

// Archive maps a YYYY-MM month key to the distinct titles first seen as new in
// that month, in the order they were seen.
type Archive map[string][]string

// MonthKey returns the archive bucket for t, in t's location.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// Has reports whether title is already recorded under month.
func (a Archive) Has(month, title string) bool {
	for _, t := range a[month] {
		if t == title {
			return true
		}
	}
	return false
}

// Add records title under month unless it is already there. It reports whether
// the archive changed.
func (a Archive) Add(month, title string) bool {
	if a.Has(month, title) {
		return false
	}
	a[month] = append(a[month], title)
	return true
}

// Clone returns a deep copy.
func (a Archive) Clone() Archive {
	out := make(Archive, len(a))
	for k, v := range a {
		out[k] = append([]string(nil), v...)
	}
	return out
}
