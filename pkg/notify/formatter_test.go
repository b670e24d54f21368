package notify

import (
	"testing"

	"github.com/sw33tLie/freedrops/pkg/changes"
)

func TestFormatEmpty(t *testing.T) {
	if _, ok := (Formatter{}).Format(nil); ok {
		t.Fatalf("expected no message for no events")
	}
}

func TestFormatAndRender(t *testing.T) {
	f := Formatter{DashboardURL: "https://example.github.io/dashboard.html?a=1&b=2"}
	msg, ok := f.Format([]changes.Event{
		changes.ExpiredOffer("EGS", "A"),
		changes.NewOffer("EGS", "B <Deluxe> & Co"),
	})
	if !ok {
		t.Fatalf("expected a message")
	}
	if msg.Header != DefaultHeader {
		t.Fatalf("unexpected header %q", msg.Header)
	}

	wantHTML := "🗞 <b>Free Game Update</b> 🗞\n\n" +
		"🔻 Expired: <b>EGS</b> – A\n" +
		"🟢 New Freebie: <b>EGS</b> – B &lt;Deluxe&gt; &amp; Co\n\n" +
		"🌐 <a href=\"https://example.github.io/dashboard.html?a=1&amp;b=2\">Dashboard</a>"
	if got := RenderHTML(msg); got != wantHTML {
		t.Fatalf("unexpected html.\nwant: %q\ngot:  %q", wantHTML, got)
	}

	wantText := "Free Game Update\n\n" +
		"🔻 Expired: EGS – A\n" +
		"🟢 New Freebie: EGS – B <Deluxe> & Co\n\n" +
		"View on dashboard: https://example.github.io/dashboard.html?a=1&b=2"
	if got := RenderText(msg); got != wantText {
		t.Fatalf("unexpected text.\nwant: %q\ngot:  %q", wantText, got)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"rendered summary", "🗞 <b>Update</b> 🗞\n\n🟢 New Freebie: <b>GOG</b> – A &amp; B", "🗞 Update 🗞\n\n🟢 New Freebie: GOG – A & B"},
		{"br tags", "line one<br/>line two<br>line three", "line one\nline two\nline three"},
		{"collapses blank lines", "<p>a</p><p>b</p>", "a\n\nb"},
		{"link text kept", `<a href="https://x">Dashboard</a>`, "Dashboard"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripHTML(tc.in); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}
