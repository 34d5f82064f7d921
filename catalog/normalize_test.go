package catalog

import (
	"errors"
	"testing"

	"github.com/signalsfoundry/satcom-planner/model"
)

func ring(pts ...[2]float64) []model.LonLat {
	out := make([]model.LonLat, 0, len(pts))
	for _, p := range pts {
		out = append(out, model.LonLat{Lon: p[0], Lat: p[1]})
	}
	return out
}

func TestValidateRingRejectsMalformedRings(t *testing.T) {
	if err := ValidateRing(ring([2]float64{0, 0}, [2]float64{1, 0})); !errors.Is(err, ErrRingTooSmall) {
		t.Fatalf("two-vertex ring error = %v, want ErrRingTooSmall", err)
	}

	if err := ValidateRing(ring([2]float64{0, 0}, [2]float64{1, 95}, [2]float64{1, 1})); !errors.Is(err, ErrRingBadVertex) {
		t.Fatalf("out-of-range latitude error = %v, want ErrRingBadVertex", err)
	}

	// Bowtie: edges 0-1 and 2-3 cross.
	bowtie := ring([2]float64{0, 0}, [2]float64{10, 10}, [2]float64{10, 0}, [2]float64{0, 10})
	if err := ValidateRing(bowtie); !errors.Is(err, ErrRingSelfIntersect) {
		t.Fatalf("bowtie error = %v, want ErrRingSelfIntersect", err)
	}
}

func TestValidateRingAcceptsSimpleAndWrappingRings(t *testing.T) {
	square := ring([2]float64{0, 0}, [2]float64{10, 0}, [2]float64{10, 10}, [2]float64{0, 10})
	if err := ValidateRing(square); err != nil {
		t.Fatalf("square: %v", err)
	}

	// A Pacific footprint whose vertices hop across the antimeridian is not
	// self-intersecting once edges take the short way around.
	pacific := ring([2]float64{170, -10}, [2]float64{-170, -10}, [2]float64{-170, 10}, [2]float64{170, 10})
	if err := ValidateRing(pacific); err != nil {
		t.Fatalf("pacific: %v", err)
	}
}

func TestSplitAntimeridianLeavesInFrameRingsAlone(t *testing.T) {
	square := ring([2]float64{0, 0}, [2]float64{10, 0}, [2]float64{10, 10}, [2]float64{0, 10})

	rings := SplitAntimeridian(square)
	if len(rings) != 1 {
		t.Fatalf("ring count = %d, want 1", len(rings))
	}
	if len(rings[0]) != 4 {
		t.Fatalf("vertex count = %d, want 4", len(rings[0]))
	}
}

func TestSplitAntimeridianSplitsCrossingRing(t *testing.T) {
	pacific := ring([2]float64{170, -10}, [2]float64{-170, -10}, [2]float64{-170, 10}, [2]float64{170, 10})

	rings := SplitAntimeridian(pacific)
	if len(rings) != 2 {
		t.Fatalf("ring count = %d, want 2 (east + west)", len(rings))
	}
	for _, r := range rings {
		if len(r) < 3 {
			t.Fatalf("split produced a degenerate ring: %v", r)
		}
		for _, p := range r {
			if p.Lon < -180 || p.Lon > 180 {
				t.Fatalf("split vertex %v outside [-180, 180]", p)
			}
		}
	}

	// Containment on both sides of the seam works through the split rings.
	contains := func(lon, lat float64) bool {
		for _, r := range rings {
			inside := false
			n := len(r)
			for i := 0; i < n; i++ {
				p0, p1 := r[i], r[(i+1)%n]
				if (p0.Lat <= lat && lat < p1.Lat) || (p1.Lat <= lat && lat < p0.Lat) {
					x := p0.Lon + (lat-p0.Lat)*(p1.Lon-p0.Lon)/(p1.Lat-p0.Lat)
					if x > lon {
						inside = !inside
					}
				}
			}
			if inside {
				return true
			}
		}
		return false
	}
	if !contains(175, 0) {
		t.Fatal("eastern side of the seam should be covered")
	}
	if !contains(-175, 0) {
		t.Fatal("western side of the seam should be covered")
	}
	if contains(0, 0) {
		t.Fatal("far side of the globe should not be covered")
	}
}
