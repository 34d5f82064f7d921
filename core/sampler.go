package core

import (
	"math"
	"sort"
	"time"

	"github.com/signalsfoundry/satcom-planner/model"
)

// DefaultSampleInterval is the cadence at which routes are sampled for
// geometry and coverage evaluation.
const DefaultSampleInterval = 60 * time.Second

// CrossingTolerance bounds the binary-search refinement of containment and
// constraint flips between consecutive samples.
const CrossingTolerance = time.Second

// Sample is one timestamped position along the route.
type Sample struct {
	Time time.Time
	Lat  float64
	Lon  float64
	AltM float64
}

// RouteSampler produces a lazy, finite, restartable sequence of
// (timestamp, position) samples along the route at a fixed interval.
// The end of the sampled span is always emitted even when it does not fall
// on the sampling grid, so the sequence covers the span exactly.
type RouteSampler struct {
	route      model.Route
	interval   time.Duration
	start, end time.Time
	next       time.Time
	done       bool
}

// NewRouteSampler creates a sampler over the full route. A non-positive
// interval falls back to DefaultSampleInterval.
func NewRouteSampler(route model.Route, interval time.Duration) *RouteSampler {
	return NewSpanSampler(route, route.Start(), route.End(), interval)
}

// NewSpanSampler creates a sampler over the [start, end] portion of the
// route, which the rule evaluators use to sample one satellite-assignment
// run at a time.
func NewSpanSampler(route model.Route, start, end time.Time, interval time.Duration) *RouteSampler {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &RouteSampler{
		route:    route,
		interval: interval,
		start:    start,
		end:      end,
		next:     start,
	}
}

// Next returns the next sample, or ok=false once the span end has been
// emitted.
func (s *RouteSampler) Next() (Sample, bool) {
	if s.done {
		return Sample{}, false
	}
	t := s.next
	if !t.Before(s.end) {
		t = s.end
		s.done = true
	}
	s.next = s.next.Add(s.interval)
	return SampleAt(s.route, t), true
}

// Reset restarts the sampler from the beginning of its span.
func (s *RouteSampler) Reset() {
	s.next = s.start
	s.done = false
}

// SampleAt builds the route sample at an arbitrary instant.
func SampleAt(route model.Route, t time.Time) Sample {
	lat, lon, alt := PositionAt(route, t)
	return Sample{Time: t, Lat: lat, Lon: lon, AltM: alt}
}

// PositionAt linearly interpolates the route position at time t. Longitude
// interpolation takes the short way around, so a segment from 179° to -179°
// passes through the antimeridian rather than sweeping across the globe.
// Times outside the route span clamp to the first/last waypoint.
func PositionAt(route model.Route, t time.Time) (lat, lon, altM float64) {
	wps := route.Waypoints
	if !t.After(wps[0].Time) {
		return wps[0].Latitude, wps[0].Longitude, wps[0].AltitudeM
	}
	last := wps[len(wps)-1]
	if !t.Before(last.Time) {
		return last.Latitude, last.Longitude, last.AltitudeM
	}

	// First waypoint strictly after t; its predecessor starts the segment.
	i := sort.Search(len(wps), func(i int) bool { return wps[i].Time.After(t) })
	a, b := wps[i-1], wps[i]

	f := float64(t.Sub(a.Time)) / float64(b.Time.Sub(a.Time))
	lat = a.Latitude + f*(b.Latitude-a.Latitude)
	lon = wrapLon(a.Longitude + f*wrapLon(b.Longitude-a.Longitude))
	altM = a.AltitudeM + f*(b.AltitudeM-a.AltitudeM)
	return lat, lon, altM
}

// wrapLon normalizes a longitude (or longitude delta) into [-180, 180].
func wrapLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// PointInRing tests containment of (lon, lat) in a single non-wrapping ring
// by ray casting. It assumes the last vertex does not repeat the first, and
// so includes the closing edge in its test. Rings must have been normalized
// (antimeridian-split) at catalog-load time.
func PointInRing(lon, lat float64, ring []model.LonLat) bool {
	inside := false
	n := len(ring)
	for i := 0; i < n; i++ {
		p0, p1 := ring[i], ring[(i+1)%n]
		if (p0.Lat <= lat && lat < p1.Lat) || (p1.Lat <= lat && lat < p0.Lat) {
			x := p0.Lon + (lat-p0.Lat)*(p1.Lon-p0.Lon)/(p1.Lat-p0.Lat)
			if x > lon {
				inside = !inside
			}
		}
	}
	return inside
}

// CoveredBy reports whether the position lies inside any normalized ring of
// the satellite's coverage polygon set.
func CoveredBy(sat *model.SatelliteDefinition, lat, lon float64) bool {
	for _, p := range sat.Polygons {
		for _, ring := range p.Rings {
			if PointInRing(lon, lat, ring) {
				return true
			}
		}
	}
	return false
}

// RefineCrossing binary-searches the instant at which pred flips between t0
// and t1 (pred(t0) != pred(t1) is assumed). It returns the earliest probed
// time on the t1 side of the flip, within tol of the true crossing.
func RefineCrossing(t0, t1 time.Time, tol time.Duration, pred func(time.Time) bool) time.Time {
	if tol <= 0 {
		tol = CrossingTolerance
	}
	p0 := pred(t0)
	for t1.Sub(t0) > tol {
		mid := t0.Add(t1.Sub(t0) / 2)
		if pred(mid) == p0 {
			t0 = mid
		} else {
			t1 = mid
		}
	}
	return t1
}
