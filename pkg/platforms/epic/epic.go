package epic

import (
	"context"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sw33tLie/freedrops/pkg/offers"
	"github.com/sw33tLie/freedrops/pkg/whttp"
	"github.com/tidwall/gjson"
)

const (
	PLATFORM_NAME = "Epic Games Store"
	API_URL       = "https://store-site-backend-static.ak.epicgames.com/freeGamesPromotions?locale=en-US&country=IN&allowCountries=IN"
	STORE_URL     = "https://store.epicgames.com/p/"
)

type Source struct {
	Client *retryablehttp.Client
	URL    string // defaults to API_URL
}

func (s *Source) Name() string { return PLATFORM_NAME }

func (s *Source) DefaultCTA() string { return "Claim directly on the Epic Games Store" }

func (s *Source) Fetch(ctx context.Context) ([]offers.RawOffer, error) {
	url := s.URL
	if url == "" {
		url = API_URL
	}
	res, err := whttp.Get(ctx, s.Client, url, whttp.WHTTPHeader{Name: "Accept", Value: "application/json"})
	if err != nil {
		return nil, err
	}
	return parsePromotions(res.BodyString), nil
}

// parsePromotions extracts the elements whose discounted price is zero.
func parsePromotions(body string) []offers.RawOffer {
	var out []offers.RawOffer
	elements := gjson.Get(body, "data.Catalog.searchStore.elements")
	for _, g := range elements.Array() {
		price := g.Get("price.totalPrice.discountPrice")
		if !price.Exists() || price.Int() != 0 {
			continue
		}

		title := g.Get("title").String()
		if title == "" {
			title = g.Get("productSlug").String()
		}
		if title == "" {
			title = "Unknown"
		}

		banner := strings.TrimSpace(g.Get("keyImages.0.url").String())

		link := ""
		slug := strings.Trim(strings.TrimSpace(g.Get("productSlug").String()), "/")
		if slug != "" {
			link = STORE_URL + slug
		}

		out = append(out, offers.RawOffer{
			Platform: PLATFORM_NAME,
			Title:    title,
			Status:   offers.StatusFreshDrop,
			Banner:   banner,
			Link:     link,
		})
	}
	return out
}
