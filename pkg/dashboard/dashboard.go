package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sw33tLie/freedrops/pkg/offers"
	"github.com/weppos/publicsuffix-go/publicsuffix"
)

const (
	DefaultTemplatePath = "dashboard/template_dashboard.html"
	DefaultOutputPath   = "dashboard/dashboard.html"

	TimestampPlaceholder = "{{TIMESTAMP}}"
	BlocksPlaceholder    = "{{GAME_BLOCKS}}"
	TimestampLayout      = "2006-01-02 15:04 MST"
)

// Options controls where the dashboard is read from and written to.
type Options struct {
	TemplatePath string
	OutputPath   string
	Now          time.Time
}

type offerView struct {
	Title  string
	Status string
	Banner string
	Link   string
	CTA    string
	Store  string
}

type platformView struct {
	Name   string
	Offers []offerView
}

var blocksTmpl = template.Must(template.New("blocks").Parse(`{{range .}}<h2>{{.Name}}</h2><ul>
{{range .Offers}}<li>{{if .Banner}}<img src="{{.Banner}}" alt="" style="max-width:220px"/>{{end}}{{if .Link}}<a href="{{.Link}}" target="_blank"><strong>{{.Title}}</strong></a> — {{.Status}}{{if .Store}} <small>({{.Store}})</small>{{end}}{{else}}<strong>{{.Title}}</strong> — {{.Status}} <em>({{.CTA}})</em>{{end}}</li>
{{end}}</ul>
{{end}}`))

var pageTmpl = template.Must(template.New("page").Parse(`<html><head><meta charset="utf-8"><title>Free Game Tracker</title></head><body><h1>Free Game Tracker</h1><p>{{.Timestamp}}</p>
{{.Blocks}}</body></html>
`))

// Render writes the dashboard page for snap. When the template file exists its
// placeholders are filled in; otherwise a plain fallback page is produced.
func Render(snap *offers.Snapshot, opts Options) error {
	if opts.TemplatePath == "" {
		opts.TemplatePath = DefaultTemplatePath
	}
	if opts.OutputPath == "" {
		opts.OutputPath = DefaultOutputPath
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	blocks, err := RenderBlocks(snap)
	if err != nil {
		return err
	}
	timestamp := opts.Now.Format(TimestampLayout)

	var page []byte
	tpl, err := os.ReadFile(opts.TemplatePath)
	switch {
	case err == nil:
		out := strings.ReplaceAll(string(tpl), TimestampPlaceholder, template.HTMLEscapeString(timestamp))
		out = strings.ReplaceAll(out, BlocksPlaceholder, string(blocks))
		page = []byte(out)
	case errors.Is(err, os.ErrNotExist):
		var buf bytes.Buffer
		if err := pageTmpl.Execute(&buf, struct {
			Timestamp string
			Blocks    template.HTML
		}{timestamp, blocks}); err != nil {
			return err
		}
		page = buf.Bytes()
	default:
		return fmt.Errorf("reading dashboard template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(opts.OutputPath, page, 0o644)
}

// RenderBlocks renders one section per platform.
func RenderBlocks(snap *offers.Snapshot) (template.HTML, error) {
	var views []platformView
	for _, p := range snap.Platforms() {
		pv := platformView{Name: p}
		for _, o := range snap.Offers(p) {
			ov := offerView{
				Title:  o.Title,
				Status: o.Status,
				Banner: o.Banner,
				Link:   o.Link,
				CTA:    o.CTA,
			}
			if ov.Link == "" && ov.CTA == "" {
				ov.CTA = fmt.Sprintf("Claim directly on the %s website", p)
			}
			if ov.Link != "" {
				ov.Store = StoreDomain(ov.Link)
			}
			pv.Offers = append(pv.Offers, ov)
		}
		views = append(views, pv)
	}

	var buf bytes.Buffer
	if err := blocksTmpl.Execute(&buf, views); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// StoreDomain returns the registrable domain of link, e.g.
// "https://store.epicgames.com/p/x" -> "epicgames.com". It returns "" when the
// host can't be resolved against the public suffix list.
func StoreDomain(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	domain, err := publicsuffix.Domain(u.Hostname())
	if err != nil {
		return ""
	}
	return domain
}
