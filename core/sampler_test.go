package core

import (
	"math"
	"testing"
	"time"

	"github.com/signalsfoundry/satcom-planner/model"
)

func twoPointRoute(start time.Time, dur time.Duration, lat0, lon0, lat1, lon1 float64) model.Route {
	return model.Route{Waypoints: []model.Waypoint{
		{Latitude: lat0, Longitude: lon0, AltitudeM: 10000, Time: start},
		{Latitude: lat1, Longitude: lon1, AltitudeM: 10000, Time: start.Add(dur)},
	}}
}

func TestRouteSamplerCoversFullSpan(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	route := twoPointRoute(start, 150*time.Second, 0, 0, 0, 1)

	s := NewRouteSampler(route, time.Minute)
	var times []time.Time
	for {
		sample, ok := s.Next()
		if !ok {
			break
		}
		times = append(times, sample.Time)
	}

	want := []time.Time{start, start.Add(time.Minute), start.Add(2 * time.Minute), start.Add(150 * time.Second)}
	if len(times) != len(want) {
		t.Fatalf("sample count = %d, want %d (%v)", len(times), len(want), times)
	}
	for i := range want {
		if !times[i].Equal(want[i]) {
			t.Fatalf("sample %d = %v, want %v", i, times[i], want[i])
		}
	}

	// Exhausted samplers stay exhausted until Reset.
	if _, ok := s.Next(); ok {
		t.Fatal("expected exhausted sampler to return ok=false")
	}
	s.Reset()
	if sample, ok := s.Next(); !ok || !sample.Time.Equal(start) {
		t.Fatalf("after Reset, first sample = %v ok=%v, want %v", sample.Time, ok, start)
	}
}

func TestSpanSamplerCoversSubSpan(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	route := twoPointRoute(start, time.Hour, 0, 0, 0, 1)

	lo := start.Add(10 * time.Minute)
	hi := start.Add(12*time.Minute + 30*time.Second)
	s := NewSpanSampler(route, lo, hi, time.Minute)

	var times []time.Time
	for {
		sample, ok := s.Next()
		if !ok {
			break
		}
		times = append(times, sample.Time)
	}

	want := []time.Time{lo, lo.Add(time.Minute), lo.Add(2 * time.Minute), hi}
	if len(times) != len(want) {
		t.Fatalf("sample count = %d, want %d (%v)", len(times), len(want), times)
	}
	for i := range want {
		if !times[i].Equal(want[i]) {
			t.Fatalf("sample %d = %v, want %v", i, times[i], want[i])
		}
	}

	s.Reset()
	if sample, ok := s.Next(); !ok || !sample.Time.Equal(lo) {
		t.Fatalf("after Reset, first sample = %v ok=%v, want %v", sample.Time, ok, lo)
	}

	// SampleAt agrees with the sampler's own positions.
	at := SampleAt(route, lo)
	if at.Lat != 0 || math.Abs(at.Lon-1.0/6) > 1e-9 {
		t.Fatalf("SampleAt position = (%v, %v)", at.Lat, at.Lon)
	}
}

func TestPositionAtInterpolatesAndClamps(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	route := twoPointRoute(start, 2*time.Hour, 10, 20, 30, 40)

	lat, lon, _ := PositionAt(route, start.Add(time.Hour))
	if math.Abs(lat-20) > 1e-9 || math.Abs(lon-30) > 1e-9 {
		t.Fatalf("midpoint = (%v, %v), want (20, 30)", lat, lon)
	}

	// Before the route starts and after it ends, positions clamp.
	lat, lon, _ = PositionAt(route, start.Add(-time.Hour))
	if lat != 10 || lon != 20 {
		t.Fatalf("pre-start = (%v, %v), want (10, 20)", lat, lon)
	}
	lat, lon, _ = PositionAt(route, start.Add(3*time.Hour))
	if lat != 30 || lon != 40 {
		t.Fatalf("post-end = (%v, %v), want (30, 40)", lat, lon)
	}
}

func TestPositionAtTakesShortWayAcrossAntimeridian(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	route := twoPointRoute(start, time.Hour, 0, 179, 0, -179)

	_, lon, _ := PositionAt(route, start.Add(30*time.Minute))
	if math.Abs(math.Abs(lon)-180) > 1e-9 {
		t.Fatalf("midpoint longitude = %v, want +-180", lon)
	}

	// A quarter of the way along, still on the eastern side.
	_, lon, _ = PositionAt(route, start.Add(15*time.Minute))
	if math.Abs(lon-179.5) > 1e-9 {
		t.Fatalf("quarter-point longitude = %v, want 179.5", lon)
	}
}

func TestPointInRing(t *testing.T) {
	square := []model.LonLat{{Lon: 0, Lat: 0}, {Lon: 10, Lat: 0}, {Lon: 10, Lat: 10}, {Lon: 0, Lat: 10}}

	if !PointInRing(5, 5, square) {
		t.Fatal("centre should be inside")
	}
	if PointInRing(15, 5, square) {
		t.Fatal("east of the square should be outside")
	}
	if PointInRing(5, -1, square) {
		t.Fatal("south of the square should be outside")
	}
	if PointInRing(-0.0001, 5, square) {
		t.Fatal("just west of the edge should be outside")
	}
	if !PointInRing(0.0001, 5, square) {
		t.Fatal("just east of the edge should be inside")
	}
}

func TestCoveredByChecksEveryRing(t *testing.T) {
	sat := &model.SatelliteDefinition{
		ID:        "KA-1",
		Transport: model.TransportKa,
		Polygons: []model.CoveragePolygon{{
			Name: "split",
			Rings: [][]model.LonLat{
				{{Lon: 0, Lat: 0}, {Lon: 10, Lat: 0}, {Lon: 10, Lat: 10}, {Lon: 0, Lat: 10}},
				{{Lon: 20, Lat: 0}, {Lon: 30, Lat: 0}, {Lon: 30, Lat: 10}, {Lon: 20, Lat: 10}},
			},
		}},
	}

	if !CoveredBy(sat, 5, 5) || !CoveredBy(sat, 5, 25) {
		t.Fatal("positions inside either ring should be covered")
	}
	if CoveredBy(sat, 5, 15) {
		t.Fatal("the gap between rings should not be covered")
	}
}

func TestRefineCrossingConvergesWithinTolerance(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	target := start.Add(37*time.Second + 412*time.Millisecond)
	pred := func(tm time.Time) bool { return !tm.Before(target) }

	got := RefineCrossing(start, start.Add(time.Minute), time.Second, pred)
	if !pred(got) {
		t.Fatalf("refined crossing %v is on the wrong side of the flip", got)
	}
	if diff := got.Sub(target); diff < 0 || diff > time.Second {
		t.Fatalf("refined crossing %v not within 1s after %v", got, target)
	}
}
