package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sw33tLie/freedrops/pkg/changes"
)

// DefaultHeader is the message title used when a Formatter has none.
const DefaultHeader = "Free Game Update"

// Message is the structured notification for one run. Adapters decide how to
// mark it up.
type Message struct {
	Header       string
	Lines        []changes.Event
	DashboardURL string
}

// Notifier delivers a message to some channel.
type Notifier interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Formatter turns change events into a Message.
type Formatter struct {
	Header       string
	DashboardURL string
}

// Format returns false when there is nothing to notify.
func (f Formatter) Format(events []changes.Event) (Message, bool) {
	if len(events) == 0 {
		return Message{}, false
	}
	header := f.Header
	if header == "" {
		header = DefaultHeader
	}
	return Message{
		Header:       header,
		Lines:        append([]changes.Event(nil), events...),
		DashboardURL: f.DashboardURL,
	}, true
}

// RenderHTML renders msg in the HTML subset accepted by Telegram.
func RenderHTML(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗞 <b>%s</b> 🗞\n\n", html.EscapeString(msg.Header))
	for _, ev := range msg.Lines {
		fmt.Fprintf(&b, "%s: <b>%s</b> – %s\n", label(ev.Kind), html.EscapeString(ev.Platform), html.EscapeString(ev.Title))
	}
	if msg.DashboardURL != "" {
		fmt.Fprintf(&b, "\n🌐 <a href=\"%s\">Dashboard</a>", html.EscapeString(msg.DashboardURL))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderText renders msg without markup.
func RenderText(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", msg.Header)
	for _, ev := range msg.Lines {
		fmt.Fprintf(&b, "%s: %s – %s\n", label(ev.Kind), ev.Platform, ev.Title)
	}
	if msg.DashboardURL != "" {
		fmt.Fprintf(&b, "\nView on dashboard: %s", msg.DashboardURL)
	}
	return strings.TrimRight(b.String(), "\n")
}

func label(k changes.Kind) string {
	switch k {
	case changes.KindNew:
		return "🟢 New Freebie"
	case changes.KindExpired:
		return "🔻 Expired"
	default:
		return string(k)
	}
}
