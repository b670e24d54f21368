package notify

import (
	"strings"

	"golang.org/x/net/html"
)

var lineBreakTags = map[string]bool{"br": true, "p": true, "div": true, "li": true, "hr": true}

// StripHTML turns a stored summary into plain text. Line-breaking tags become
// newlines and entities are decoded.
func StripHTML(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapseBlankLines(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			if lineBreakTags[string(name)] {
				b.WriteByte('\n')
			}
		}
	}
}

// collapseBlankLines trims trailing spaces and keeps at most one empty line in a row.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		if l == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
