package offers

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		raw        RawOffer
		defaultCTA string
		wantLink   string
		wantCTA    string
	}{
		{
			name:       "non http scheme is dropped and cta injected",
			raw:        RawOffer{Platform: "GOG", Title: "X", Link: "ftp://x"},
			defaultCTA: "Claim directly on GOG",
			wantLink:   "",
			wantCTA:    "Claim directly on GOG",
		},
		{
			name:       "https link kept without cta",
			raw:        RawOffer{Platform: "GOG", Title: "X", Link: "https://x"},
			defaultCTA: "Claim directly on GOG",
			wantLink:   "https://x",
			wantCTA:    "",
		},
		{
			name:       "link is trimmed",
			raw:        RawOffer{Link: "  http://example.com/game \n"},
			defaultCTA: "fallback",
			wantLink:   "http://example.com/game",
		},
		{
			name:       "relative link dropped",
			raw:        RawOffer{Link: "/p/game"},
			defaultCTA: "fallback",
			wantCTA:    "fallback",
		},
		{
			name:       "existing cta never overwritten",
			raw:        RawOffer{CTA: "Expired – no longer claimable"},
			defaultCTA: "fallback",
			wantCTA:    "Expired – no longer claimable",
		},
		{
			name: "no default cta leaves it empty",
			raw:  RawOffer{Title: "X"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw, tc.defaultCTA)
			if got.Link != tc.wantLink {
				t.Fatalf("link: want %q, got %q", tc.wantLink, got.Link)
			}
			if got.CTA != tc.wantCTA {
				t.Fatalf("cta: want %q, got %q", tc.wantCTA, got.CTA)
			}
		})
	}
}

func TestNormalizeKeepsOtherFields(t *testing.T) {
	raw := RawOffer{Platform: "Steam", Title: "Game", Status: StatusFreshDrop, Banner: "https://img/x.png"}
	got := Normalize(raw, "")
	want := Offer{Platform: "Steam", Title: "Game", Status: StatusFreshDrop, Banner: "https://img/x.png"}
	if got != want {
		t.Fatalf("unexpected offer.\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestIsExpired(t *testing.T) {
	expired := []string{"Expired", "Offer ENDED", "no longer available", "Currently Unavailable", "expired yesterday"}
	for _, s := range expired {
		if !IsExpired(s) {
			t.Errorf("expected %q to be expired", s)
		}
	}

	active := []string{"", StatusFreshDrop, "Fresh Drop (Expires 2 days)", "Ends in 3 days"}
	for _, s := range active {
		if IsExpired(s) {
			t.Errorf("expected %q to be active", s)
		}
	}
}
