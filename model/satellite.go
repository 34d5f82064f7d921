package model

// LonLat is a geographic point in degrees. Longitude first to match the
// (lon, lat) vertex order used by coverage-polygon source data.
type LonLat struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// CoveragePolygon is one named ring of a satellite's coverage footprint.
//
// Ring is the ring as imported. Rings is the normalized form produced at
// catalog-load time: rings whose vertex longitudes span more than 180° are
// split at the antimeridian so every containment test can assume a ring
// that never wraps. Containment always operates on Rings, never on Ring.
type CoveragePolygon struct {
	Name  string     `json:"name"`
	Ring  []LonLat   `json:"ring"`
	Rings [][]LonLat `json:"-"`
}

// SatelliteDefinition describes one satellite in the catalog.
//
// X-band satellites are geostationary and characterized solely by their
// orbital longitude. Ka-band satellites carry a set of coverage polygons and
// optionally an orbital longitude for the elevation-threshold fallback.
// Ku-band is modeled as a constant always-available definition with neither.
type SatelliteDefinition struct {
	ID        string    `json:"id"`
	Transport Transport `json:"transport"`

	// OrbitalLongitudeDeg is the geostationary longitude in degrees.
	// A pointer distinguishes "not configured" from an explicit 0° slot.
	OrbitalLongitudeDeg *float64 `json:"orbital_longitude_deg,omitempty"`

	Polygons []CoveragePolygon `json:"polygons,omitempty"`
}
