// Package zones normalizes free-text restaurant locations into the zone keys
// the benchmark reference data is indexed by. When a Google Maps client is
// configured the locality comes from geocoding; otherwise a static
// containment table covers the supported zones.
package zones

import (
	"context"
	"strings"

	"googlemaps.github.io/maps"

	apperrors "menu-profit-engine/pkg/errors"
)

// knownZones lists the zones present in the benchmark reference data.
// Containment is checked in this order.
var knownZones = []string{
	"paris", "lyon", "marseille", "bordeaux", "lille", "toulouse", "nice",
}

// Resolver turns addresses into benchmark zone keys.
type Resolver struct {
	client *maps.Client
}

// NewResolver builds a resolver. An empty API key yields a resolver that
// only uses the static table; geocoding is optional by design.
func NewResolver(apiKey string) (*Resolver, error) {
	if apiKey == "" {
		return &Resolver{}, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, apperrors.NewExternal("zones.NewResolver", "google", "creating maps client", err)
	}
	return &Resolver{client: client}, nil
}

// Resolve maps a free-text location to a zone key. Total: unmatched input
// folds to a trimmed lower-case form so exact keys still work against the
// reference store.
func (r *Resolver) Resolve(ctx context.Context, location string) string {
	if zone, ok := matchStatic(location); ok {
		return zone
	}

	if r.client != nil {
		if zone, ok := r.geocodeLocality(ctx, location); ok {
			return zone
		}
	}

	return strings.ToLower(strings.TrimSpace(location))
}

// geocodeLocality asks the geocoding API for the locality component of the
// address and retries the static match on it.
func (r *Resolver) geocodeLocality(ctx context.Context, location string) (string, bool) {
	resp, err := r.client.Geocode(ctx, &maps.GeocodingRequest{Address: location})
	if err != nil || len(resp) == 0 {
		return "", false
	}

	for _, comp := range resp[0].AddressComponents {
		for _, t := range comp.Types {
			if t == "locality" {
				if zone, ok := matchStatic(comp.LongName); ok {
					return zone, true
				}
				return strings.ToLower(strings.TrimSpace(comp.LongName)), true
			}
		}
	}
	return "", false
}

func matchStatic(location string) (string, bool) {
	loc := strings.ToLower(location)
	for _, z := range knownZones {
		if strings.Contains(loc, z) {
			return z, true
		}
	}
	return "", false
}
