package offers

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSnapshotJSONKeepsPlatformOrder(t *testing.T) {
	snap := NewSnapshot()
	snap.Add(fresh("Steam", "a"))
	snap.Add(Offer{Platform: "Epic Games Store", Title: "b", Status: StatusFreshDrop, CTA: "Claim directly"})
	snap.Add(fresh("GOG", "c"))

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"Steam":[{"platform":"Steam","title":"a","status":"Fresh Drop","banner":"","link":""}],` +
		`"Epic Games Store":[{"platform":"Epic Games Store","title":"b","status":"Fresh Drop","banner":"","link":"","cta":"Claim directly"}],` +
		`"GOG":[{"platform":"GOG","title":"c","status":"Fresh Drop","banner":"","link":""}]}`
	if string(data) != want {
		t.Fatalf("unexpected encoding.\nwant: %s\ngot:  %s", want, data)
	}

	decoded := NewSnapshot()
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded.Platforms(), snap.Platforms()) {
		t.Fatalf("platform order lost: %v", decoded.Platforms())
	}
	if !reflect.DeepEqual(decoded.Flat(), snap.Flat()) {
		t.Fatalf("offers differ after decoding: %#v", decoded.Flat())
	}
}

func TestSnapshotUnmarshalRejectsBadShapes(t *testing.T) {
	for _, in := range []string{`[]`, `{"GOG": {"title": "x"}}`, `{"GOG": [`, `not json`} {
		s := NewSnapshot()
		if err := json.Unmarshal([]byte(in), s); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}

func TestSnapshotUnmarshalNullPlatform(t *testing.T) {
	in := `{"Steam": null, "GOG": [{"platform":"GOG","title":"c","status":"Fresh Drop","banner":"","link":""}], "Humble": 7}`
	s := NewSnapshot()
	if err := json.Unmarshal([]byte(in), s); err == nil {
		t.Fatalf("expected error for a non-array, non-null platform")
	}

	in = `{"Steam": null, "GOG": [{"platform":"GOG","title":"c","status":"Fresh Drop","banner":"","link":""}]}`
	s = NewSnapshot()
	if err := json.Unmarshal([]byte(in), s); err != nil {
		t.Fatal(err)
	}
	if got, want := s.Platforms(), []string{"Steam", "GOG"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected platforms\nwant: %#v\ngot:  %#v", want, got)
	}
	if !s.Has("Steam") || len(s.Offers("Steam")) != 0 {
		t.Fatalf("expected Steam registered with no offers, got %#v", s.Offers("Steam"))
	}
	if len(s.Offers("GOG")) != 1 {
		t.Fatalf("expected GOG offers to survive a null sibling, got %#v", s.Flat())
	}
}

func TestSnapshotFlatAndEmptyPlatforms(t *testing.T) {
	snap := NewSnapshot()
	snap.SetPlatform("Ubisoft", nil)
	snap.Add(fresh("GOG", "a"))
	snap.Add(fresh("GOG", "b"))

	if got := snap.Flat(); len(got) != 2 || got[0].Title != "a" || got[1].Title != "b" {
		t.Fatalf("unexpected flat export: %#v", got)
	}
	if !snap.Has("Ubisoft") || len(snap.Offers("Ubisoft")) != 0 {
		t.Fatalf("expected empty Ubisoft group")
	}

	data, _ := json.Marshal(snap)
	if string(data) != `{"Ubisoft":[],"GOG":[{"platform":"GOG","title":"a","status":"Fresh Drop","banner":"","link":""},{"platform":"GOG","title":"b","status":"Fresh Drop","banner":"","link":""}]}` {
		t.Fatalf("unexpected encoding: %s", data)
	}

	var nilSnap *Snapshot
	if nilSnap.Len() != 0 || len(nilSnap.Flat()) != 0 {
		t.Fatalf("nil snapshot should behave as empty")
	}
}
