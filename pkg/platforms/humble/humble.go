package humble

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
	PLATFORM_NAME = "Humble"
	PLATFORM_URL  = "https://www.humblebundle.com"
	FREE_DISCOUNT = "-100%"
)

type Source struct {
	Client *retryablehttp.Client
	URL    string
}

func (s *Source) Name() string { return PLATFORM_NAME }

func (s *Source) DefaultCTA() string { return "Claim directly on Humble" }

func (s *Source) Fetch(ctx context.Context) ([]offers.RawOffer, error) {
	url := s.URL
	if url == "" {
		url = PLATFORM_URL + "/store/search?sort=discount&filter=onsale"
	}
	res, err := whttp.Get(ctx, s.Client, url)
	if err != nil {
		return nil, err
	}
	return parseStore(strings.NewReader(res.BodyString))
}

// parseStore keeps only fully discounted cards. A visible countdown is
// appended to the status so the dashboard can show it.
func parseStore(r io.Reader) ([]offers.RawOffer, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var out []offers.RawOffer
	doc.Find(".entity-block-container").Each(func(_ int, card *goquery.Selection) {
		discount := strings.TrimSpace(card.Find(".discount-amount").First().Text())
		if discount != FREE_DISCOUNT {
			return
		}

		title := strings.TrimSpace(card.Find(".entity-title").First().Text())
		if title == "" {
			return
		}

		banner := card.Find("img").First().AttrOr("src", "")

		link := strings.TrimSpace(card.Find("a[href]").First().AttrOr("href", ""))
		if strings.HasPrefix(link, "/") {
			link = PLATFORM_URL + link
		}

		status := offers.StatusFreshDrop
		if expiry := strings.TrimSpace(card.Find(".promo-timer, .countdown").First().Text()); expiry != "" {
			status += " (Expires " + expiry + ")"
		}

		out = append(out, offers.RawOffer{
			Platform: PLATFORM_NAME,
			Title:    title,
			Status:   status,
			Banner:   banner,
			Link:     link,
		})
	})
	return out, nil
}
