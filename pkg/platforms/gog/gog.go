package gog

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
	PLATFORM_NAME = "GOG"
	PLATFORM_URL  = "https://www.gog.com"
	maxCards      = 12
)

type Source struct {
	Client *retryablehttp.Client
	URL    string // defaults to the free games listing
}

func (s *Source) Name() string { return PLATFORM_NAME }

func (s *Source) DefaultCTA() string { return "Claim directly on GOG" }

func (s *Source) Fetch(ctx context.Context) ([]offers.RawOffer, error) {
	url := s.URL
	if url == "" {
		url = PLATFORM_URL + "/games?price=free"
	}
	res, err := whttp.Get(ctx, s.Client, url)
	if err != nil {
		return nil, err
	}
	return parseListing(strings.NewReader(res.BodyString))
}

func parseListing(r io.Reader) ([]offers.RawOffer, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var out []offers.RawOffer
	doc.Find("a.product-tile").EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= maxCards {
			return false
		}

		title := strings.TrimSpace(card.AttrOr("title", ""))
		if title == "" {
			title = strings.TrimSpace(card.Find(".product-title").First().Text())
		}
		if title == "" {
			return true
		}

		banner := card.Find("img").First().AttrOr("src", "")

		link := strings.TrimSpace(card.AttrOr("href", ""))
		if strings.HasPrefix(link, "/") {
			link = PLATFORM_URL + link
		}

		out = append(out, offers.RawOffer{
			Platform: PLATFORM_NAME,
			Title:    title,
			Status:   offers.StatusFreshDrop,
			Banner:   banner,
			Link:     link,
		})
		return true
	})
	return out, nil
}
