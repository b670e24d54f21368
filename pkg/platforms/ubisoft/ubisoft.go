package ubisoft

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
	PLATFORM_NAME = "Ubisoft"
	PLATFORM_URL  = "https://store.ubisoft.com"
	maxTiles      = 10
)

type Source struct {
	Client *retryablehttp.Client
	URL    string
}

func (s *Source) Name() string { return PLATFORM_NAME }

func (s *Source) DefaultCTA() string { return "Claim directly on Ubisoft Store" }

func (s *Source) Fetch(ctx context.Context) ([]offers.RawOffer, error) {
	url := s.URL
	if url == "" {
		url = PLATFORM_URL + "/us/free-games/"
	}
	res, err := whttp.Get(ctx, s.Client, url)
	if err != nil {
		return nil, err
	}
	return parseFreeGames(strings.NewReader(res.BodyString))
}

func parseFreeGames(r io.Reader) ([]offers.RawOffer, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var out []offers.RawOffer
	doc.Find("a.product-tile, a[href*='/game/']").EachWithBreak(func(i int, tile *goquery.Selection) bool {
		if i >= maxTiles {
			return false
		}

		title := strings.TrimSpace(tile.AttrOr("title", ""))
		if title == "" {
			title = strings.TrimSpace(tile.Find(".product-tile-title").First().Text())
		}
		if title == "" {
			return true
		}

		link := strings.TrimSpace(tile.AttrOr("href", ""))
		if strings.HasPrefix(link, "/") {
			link = PLATFORM_URL + link
		}

		out = append(out, offers.RawOffer{
			Platform: PLATFORM_NAME,
			Title:    title,
			Status:   offers.StatusFreshDrop,
			Link:     link,
		})
		return true
	})
	return out, nil
}
