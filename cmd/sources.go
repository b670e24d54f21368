package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sw33tLie/freedrops/pkg/platforms"
	"github.com/sw33tLie/freedrops/pkg/platforms/epic"
	"github.com/sw33tLie/freedrops/pkg/platforms/gog"
	"github.com/sw33tLie/freedrops/pkg/platforms/humble"
	"github.com/sw33tLie/freedrops/pkg/platforms/prime"
	"github.com/sw33tLie/freedrops/pkg/platforms/steam"
	"github.com/sw33tLie/freedrops/pkg/platforms/ubisoft"
)

// sourceOrder is the order sources are listed in every snapshot.
var sourceOrder = []string{"epic", "gog", "steam", "humble", "ubisoft", "prime"}

func newSource(key string, client *retryablehttp.Client) platforms.Source {
	switch key {
	case "epic":
		return &epic.Source{Client: client}
	case "gog":
		return &gog.Source{Client: client}
	case "steam":
		return &steam.Source{Client: client}
	case "humble":
		return &humble.Source{Client: client}
	case "ubisoft":
		return &ubisoft.Source{Client: client}
	case "prime":
		return &prime.Source{Client: client}
	}
	return nil
}

// selectSources parses a comma separated list ("all" for every source) and
// returns the sources in their canonical order.
func selectSources(list string, client *retryablehttp.Client) ([]platforms.Source, error) {
	wanted := map[string]bool{}
	for _, k := range strings.Split(list, ",") {
		k = strings.ToLower(strings.TrimSpace(k))
		switch {
		case k == "":
		case k == "all":
			for _, s := range sourceOrder {
				wanted[s] = true
			}
		case newSource(k, nil) != nil:
			wanted[k] = true
		default:
			return nil, fmt.Errorf("unknown source %q. Available: %s", k, strings.Join(sortedKeys(), ", "))
		}
	}

	var out []platforms.Source
	for _, k := range sourceOrder {
		if wanted[k] {
			out = append(out, newSource(k, client))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sources selected")
	}
	return out, nil
}

func sortedKeys() []string {
	keys := append([]string(nil), sourceOrder...)
	sort.Strings(keys)
	return keys
}
