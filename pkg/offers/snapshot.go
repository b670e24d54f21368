package offers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Snapshot maps platform names to their active offers. Platforms keep the
// order in which they were first added, both in memory and when encoded.
type Snapshot struct {
	order  []string
	groups map[string][]Offer
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{groups: make(map[string][]Offer)}
}

// Add appends o under its platform.
func (s *Snapshot) Add(o Offer) {
	if s.groups == nil {
		s.groups = make(map[string][]Offer)
	}
	if _, ok := s.groups[o.Platform]; !ok {
		s.order = append(s.order, o.Platform)
	}
	s.groups[o.Platform] = append(s.groups[o.Platform], o)
}

// SetPlatform replaces the list stored under platform. An empty list still
// registers the platform.
func (s *Snapshot) SetPlatform(platform string, list []Offer) {
	if s.groups == nil {
		s.groups = make(map[string][]Offer)
	}
	if _, ok := s.groups[platform]; !ok {
		s.order = append(s.order, platform)
	}
	if list == nil {
		list = []Offer{}
	}
	s.groups[platform] = list
}

// Platforms returns platform names in insertion order.
func (s *Snapshot) Platforms() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Offers returns the offers listed under platform.
func (s *Snapshot) Offers(platform string) []Offer {
	if s == nil {
		return nil
	}
	return s.groups[platform]
}

// Has reports whether platform is a key of the snapshot.
func (s *Snapshot) Has(platform string) bool {
	if s == nil {
		return false
	}
	_, ok := s.groups[platform]
	return ok
}

// Len returns the total number of offers across platforms.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, list := range s.groups {
		n += len(list)
	}
	return n
}

// Flat concatenates every platform's offers, platform order first, then list order.
func (s *Snapshot) Flat() []Offer {
	out := []Offer{}
	if s == nil {
		return out
	}
	for _, p := range s.order {
		out = append(out, s.groups[p]...)
	}
	return out
}

// Titles returns the set of titles listed under platform, exactly as stored.
func (s *Snapshot) Titles(platform string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, o := range s.Offers(platform) {
		set[o.Title] = struct{}{}
	}
	return set
}

// MarshalJSON encodes the snapshot as an object keyed by platform, in insertion order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if s != nil {
		for i, p := range s.order {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(p)
			if err != nil {
				return nil, err
			}
			list := s.groups[p]
			if list == nil {
				list = []Offer{}
			}
			val, err := json.Marshal(list)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by platform, keeping key order. A null
// platform decodes as an empty list.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("invalid snapshot JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return errors.New("snapshot must be a JSON object")
	}

	fresh := NewSnapshot()
	var decodeErr error
	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Null {
			fresh.SetPlatform(key.String(), nil)
			return true
		}
		if !value.IsArray() {
			decodeErr = fmt.Errorf("platform %q: expected an array of offers", key.String())
			return false
		}
		var list []Offer
		if err := json.Unmarshal([]byte(value.Raw), &list); err != nil {
			decodeErr = fmt.Errorf("platform %q: %w", key.String(), err)
			return false
		}
		fresh.SetPlatform(key.String(), list)
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}
	*s = *fresh
	return nil
}
