package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sw33tLie/freedrops/pkg/whttp"
	"github.com/tidwall/gjson"
)

const (
	TELEGRAM_API_URL    = "https://api.telegram.org"
	PLACEHOLDER_PREFIX  = "PLACEHOLDER"
	telegramMaxTextSize = 4096
)

// ErrNotConfigured is returned by notifiers that lack credentials. Callers
// treat it as "skip", not as a delivery failure.
var ErrNotConfigured = errors.New("notifier not configured")

// Telegram posts messages to a channel through the Bot API.
type Telegram struct {
	Token     string
	ChannelID string
	APIBase   string // defaults to TELEGRAM_API_URL
	Client    *retryablehttp.Client
}

func (t *Telegram) Name() string { return "telegram" }

// Configured reports whether real credentials were supplied.
func (t *Telegram) Configured() bool {
	return isSet(t.Token) && isSet(t.ChannelID)
}

func isSet(v string) bool {
	return v != "" && !strings.HasPrefix(v, PLACEHOLDER_PREFIX)
}

// Send posts msg as HTML with link previews disabled.
func (t *Telegram) Send(ctx context.Context, msg Message) error {
	if !t.Configured() {
		return ErrNotConfigured
	}

	text := RenderHTML(msg)
	if len(text) > telegramMaxTextSize {
		// Keep the message deliverable; the full list is on the dashboard.
		text = truncateLines(text, telegramMaxTextSize)
	}

	form := url.Values{}
	form.Set("chat_id", t.ChannelID)
	form.Set("text", text)
	form.Set("parse_mode", "HTML")
	form.Set("disable_web_page_preview", "true")

	base := t.APIBase
	if base == "" {
		base = TELEGRAM_API_URL
	}

	res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		Method:  http.MethodPost,
		URL:     strings.TrimRight(base, "/") + "/bot" + t.Token + "/sendMessage",
		Headers: []whttp.WHTTPHeader{{Name: "Content-Type", Value: "application/x-www-form-urlencoded"}},
		Body:    strings.NewReader(form.Encode()),
	}, t.Client)
	if err != nil {
		return fmt.Errorf("telegram send: %w", redact(err, t.Token))
	}

	if !gjson.Get(res.BodyString, "ok").Bool() {
		desc := gjson.Get(res.BodyString, "description").String()
		if desc == "" {
			desc = http.StatusText(res.StatusCode)
		}
		return fmt.Errorf("telegram send: HTTP %d: %s", res.StatusCode, desc)
	}
	return nil
}

// truncateLines cuts text at the last full line that fits in max bytes.
func truncateLines(text string, max int) string {
	const ellipsis = "\n…"
	cut := text[:max-len(ellipsis)]
	if i := strings.LastIndex(cut, "\n"); i > 0 {
		cut = cut[:i]
	}
	return cut + ellipsis
}

// redact keeps the bot token out of logged URL errors.
func redact(err error, token string) error {
	if token == "" {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "<token>"))
}
