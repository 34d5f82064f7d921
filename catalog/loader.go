package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/signalsfoundry/satcom-planner/model"
)

// CatalogSummary is a small summary of what was loaded from JSON. It's
// mainly useful for logging from main().
type CatalogSummary struct {
	SatelliteIDs []string
	PolygonCount int
	SplitRings   int
}

// internal JSON shapes, kept unexported so we're free to evolve them.
type catalogJSON struct {
	Satellites []satelliteJSON `json:"satellites"`
}

type satelliteJSON struct {
	ID        string `json:"id"`
	Transport string `json:"transport"` // "X" | "Ka" | "Ku"
	// Either an explicit geostationary longitude, or a TLE the loader
	// derives it from by SGP4 propagation.
	OrbitalLongitudeDeg *float64      `json:"orbital_longitude_deg,omitempty"`
	TLE                 []string      `json:"tle,omitempty"`
	TLEEpoch            string        `json:"tle_epoch,omitempty"` // RFC 3339; defaults to load time
	Polygons            []polygonJSON `json:"polygons,omitempty"`
}

type polygonJSON struct {
	Name string       `json:"name"`
	Ring [][2]float64 `json:"ring"` // [lon, lat] pairs
}

// LoadCatalog reads a JSON catalog from r, validates and normalizes every
// entry, and populates the Catalog. It fails on the first malformed entry:
// a catalog with rejected polygons must not be partially trusted.
func LoadCatalog(c *Catalog, r io.Reader) (*CatalogSummary, error) {
	if c == nil {
		return nil, fmt.Errorf("LoadCatalog: catalog is nil")
	}

	var payload catalogJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadCatalog: decode failed: %w", err)
	}

	summary := &CatalogSummary{}
	for _, js := range payload.Satellites {
		transport, err := model.ParseTransport(js.Transport)
		if err != nil {
			return nil, fmt.Errorf("LoadCatalog: satellite %q: %w", js.ID, err)
		}

		sat := &model.SatelliteDefinition{
			ID:                  js.ID,
			Transport:           transport,
			OrbitalLongitudeDeg: js.OrbitalLongitudeDeg,
		}

		if sat.OrbitalLongitudeDeg == nil && len(js.TLE) == 2 {
			epoch := time.Now().UTC()
			if js.TLEEpoch != "" {
				epoch, err = time.Parse(time.RFC3339, js.TLEEpoch)
				if err != nil {
					return nil, fmt.Errorf("LoadCatalog: satellite %q: bad tle_epoch: %w", js.ID, err)
				}
			}
			lon, err := OrbitalLongitudeFromTLE(js.TLE[0], js.TLE[1], epoch)
			if err != nil {
				return nil, fmt.Errorf("LoadCatalog: satellite %q: %w", js.ID, err)
			}
			sat.OrbitalLongitudeDeg = &lon
		}

		for _, jp := range js.Polygons {
			ring := make([]model.LonLat, 0, len(jp.Ring))
			for _, v := range jp.Ring {
				ring = append(ring, model.LonLat{Lon: v[0], Lat: v[1]})
			}
			sat.Polygons = append(sat.Polygons, model.CoveragePolygon{Name: jp.Name, Ring: ring})
		}

		if err := c.AddSatellite(sat); err != nil {
			return nil, fmt.Errorf("LoadCatalog: %w", err)
		}

		summary.SatelliteIDs = append(summary.SatelliteIDs, sat.ID)
		for _, p := range sat.Polygons {
			summary.PolygonCount++
			if len(p.Rings) > 1 {
				summary.SplitRings += len(p.Rings)
			}
		}
	}
	return summary, nil
}
