package prime

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
	PLATFORM_NAME = "Prime Gaming"
	PLATFORM_URL  = "https://gaming.amazon.com"
	EXPIRED_CTA   = "Expired – no longer claimable"
)

type Source struct {
	Client *retryablehttp.Client
	URL    string
}

func (s *Source) Name() string { return PLATFORM_NAME }

func (s *Source) DefaultCTA() string { return "Claim directly on the Prime Gaming website" }

func (s *Source) Fetch(ctx context.Context) ([]offers.RawOffer, error) {
	url := s.URL
	if url == "" {
		url = PLATFORM_URL + "/home"
	}
	res, err := whttp.Get(ctx, s.Client, url)
	if err != nil {
		return nil, err
	}
	return parseHome(strings.NewReader(res.BodyString))
}

// parseHome reads the item cards. Ended cards are still returned, with an
// "Expired" status, and get filtered out during aggregation.
func parseHome(r io.Reader) ([]offers.RawOffer, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var out []offers.RawOffer
	doc.Find("div[data-a-target='item-card']").Each(func(_ int, card *goquery.Selection) {
		titleTag := card.Find("h3").First()
		if titleTag.Length() == 0 {
			return
		}
		title := strings.TrimSpace(titleTag.Text())

		status := offers.StatusFreshDrop
		expired := false
		if footer := card.Find(".item-card-details__footer").First(); footer.Length() > 0 {
			txt := strings.Join(strings.Fields(footer.Text()), " ")
			if strings.Contains(txt, "Ends") {
				status = txt
			}
			if strings.Contains(txt, "Ended") || strings.Contains(strings.ToLower(txt), "expired") {
				status = "Expired"
				expired = true
			}
		}

		link := ""
		if href := card.Find("a[data-a-target='FGWPOffer']").First().AttrOr("href", ""); href != "" {
			link = PLATFORM_URL + href
		} else if href := card.Find("a[data-a-target='learn-more-card']").First().AttrOr("href", ""); href != "" {
			link = PLATFORM_URL + href
		}

		o := offers.RawOffer{
			Platform: PLATFORM_NAME,
			Title:    title,
			Status:   status,
			Link:     link,
		}
		if expired {
			o.Link = ""
			o.CTA = EXPIRED_CTA
		}
		out = append(out, o)
	})
	return out, nil
}
