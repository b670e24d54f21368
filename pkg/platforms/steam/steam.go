package steam

import (
	"context"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sw33tLie/freedrops/pkg/offers"
	"github.com/sw33tLie/freedrops/pkg/whttp"
)

const (
	PLATFORM_NAME = "Steam"
	SALES_URL     = "https://steamdb.info/sales/?min_discount=100"
	maxRows       = 10
)

// Source reads 100%-off sales from SteamDB. Listings carry no direct claim
// link, so every offer falls back to the call-to-action.
type Source struct {
	Client *retryablehttp.Client
	URL    string
}

func (s *Source) Name() string { return PLATFORM_NAME }

func (s *Source) DefaultCTA() string { return "Claim directly on Steam" }

func (s *Source) Fetch(ctx context.Context) ([]offers.RawOffer, error) {
	url := s.URL
	if url == "" {
		url = SALES_URL
	}
	res, err := whttp.Get(ctx, s.Client, url, whttp.WHTTPHeader{Name: "Referer", Value: "https://www.reddit.com/"})
	if err != nil {
		return nil, err
	}
	return parseSales(strings.NewReader(res.BodyString))
}

func parseSales(r io.Reader) ([]offers.RawOffer, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var out []offers.RawOffer
	doc.Find("table.table-products tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= maxRows {
			return false
		}
		title := strings.TrimSpace(row.Find("td:nth-child(2)").First().Text())
		if title != "" {
			out = append(out, offers.RawOffer{
				Platform: PLATFORM_NAME,
				Title:    title,
				Status:   offers.StatusFreshDrop,
			})
		}
		return true
	})
	return out, nil
}
