package catalog

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/satcom-planner/model"
)

var (
	ErrRingTooSmall      = errors.New("ring needs at least 3 vertices")
	ErrRingSelfIntersect = errors.New("ring is self-intersecting")
	ErrRingBadVertex     = errors.New("ring vertex out of range")
)

// ValidateRing rejects malformed coverage rings: fewer than 3 vertices,
// latitudes outside [-90, 90], or self-intersecting edges. Rejection
// happens at catalog-load time, not during mission computation.
func ValidateRing(ring []model.LonLat) error {
	if len(ring) < 3 {
		return ErrRingTooSmall
	}
	for i, v := range ring {
		if v.Lat < -90 || v.Lat > 90 {
			return fmt.Errorf("%w: vertex %d latitude %.4f", ErrRingBadVertex, i, v.Lat)
		}
	}

	// The self-intersection test runs on the unwrapped ring so that edges
	// crossing the antimeridian are compared in a continuous frame.
	pts := unwrapRing(ring)
	n := len(pts)
	for i := 0; i < n; i++ {
		a1, a2 := pts[i], pts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip the edge itself and the two edges adjacent to it;
			// they share an endpoint by construction.
			if j == i || (j+1)%n == i || (i+1)%n == j {
				continue
			}
			b1, b2 := pts[j], pts[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return fmt.Errorf("%w: edges %d and %d", ErrRingSelfIntersect, i, j)
			}
		}
	}
	return nil
}

// SplitAntimeridian normalizes a coverage ring into one or more sub-rings
// whose vertices never wrap past ±180°. Successive vertices are connected
// the short way around; a ring that genuinely crosses the antimeridian is
// clipped into an eastern and a western part. This is a one-time, load-time
// pass: every later containment test can then assume non-wrapping rings.
func SplitAntimeridian(ring []model.LonLat) [][]model.LonLat {
	pts := unwrapRing(ring)

	minLon, maxLon := pts[0].Lon, pts[0].Lon
	for _, p := range pts[1:] {
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	// Entirely inside the standard frame after unwrapping: nothing to do.
	if minLon >= -180 && maxLon <= 180 {
		return [][]model.LonLat{append([]model.LonLat(nil), pts...)}
	}

	// The unwrapped ring spills past one side of the frame. Clip it into
	// the in-frame part and the spill-over part, then shift the spill-over
	// back into [-180, 180].
	var out [][]model.LonLat
	if maxLon > 180 {
		if east := clipRing(pts, 180, false); len(east) >= 3 {
			out = append(out, east)
		}
		if west := clipRing(pts, 180, true); len(west) >= 3 {
			out = append(out, shiftRing(west, -360))
		}
	} else {
		if east := clipRing(pts, -180, true); len(east) >= 3 {
			out = append(out, east)
		}
		if west := clipRing(pts, -180, false); len(west) >= 3 {
			out = append(out, shiftRing(west, 360))
		}
	}
	return out
}

// unwrapRing adjusts each vertex longitude by a multiple of 360° so that
// consecutive vertices differ by at most 180°, i.e. edges take the short way
// around the globe.
func unwrapRing(ring []model.LonLat) []model.LonLat {
	out := make([]model.LonLat, len(ring))
	out[0] = ring[0]
	for i := 1; i < len(ring); i++ {
		lon := ring[i].Lon
		prev := out[i-1].Lon
		for lon-prev > 180 {
			lon -= 360
		}
		for lon-prev < -180 {
			lon += 360
		}
		out[i] = model.LonLat{Lon: lon, Lat: ring[i].Lat}
	}
	return out
}

// clipRing keeps the part of the ring on one side of the meridian at
// boundary (lon <= boundary, or lon >= boundary when keepAbove is set),
// inserting interpolated vertices where edges cross it. Standard
// Sutherland-Hodgman against a single half-plane.
func clipRing(ring []model.LonLat, boundary float64, keepAbove bool) []model.LonLat {
	inside := func(p model.LonLat) bool {
		if keepAbove {
			return p.Lon >= boundary
		}
		return p.Lon <= boundary
	}
	cross := func(a, b model.LonLat) model.LonLat {
		t := (boundary - a.Lon) / (b.Lon - a.Lon)
		return model.LonLat{Lon: boundary, Lat: a.Lat + t*(b.Lat-a.Lat)}
	}

	var out []model.LonLat
	n := len(ring)
	for i := 0; i < n; i++ {
		cur, next := ring[i], ring[(i+1)%n]
		curIn, nextIn := inside(cur), inside(next)
		if curIn {
			out = append(out, cur)
			if !nextIn {
				out = append(out, cross(cur, next))
			}
		} else if nextIn {
			out = append(out, cross(cur, next))
		}
	}
	return out
}

func shiftRing(ring []model.LonLat, deltaLon float64) []model.LonLat {
	out := make([]model.LonLat, len(ring))
	for i, p := range ring {
		out[i] = model.LonLat{Lon: p.Lon + deltaLon, Lat: p.Lat}
	}
	return out
}

// segmentsCross reports whether the open segments (a1,a2) and (b1,b2)
// properly intersect. Touching at endpoints does not count; shared
// endpoints between adjacent ring edges are expected.
func segmentsCross(a1, a2, b1, b2 model.LonLat) bool {
	d1 := orient(b1, b2, a1)
	d2 := orient(b1, b2, a2)
	d3 := orient(a1, a2, b1)
	d4 := orient(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func orient(a, b, c model.LonLat) float64 {
	return (b.Lon-a.Lon)*(c.Lat-a.Lat) - (b.Lat-a.Lat)*(c.Lon-a.Lon)
}
