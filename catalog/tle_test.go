package catalog

import (
	"testing"
	"time"
)

// ISS sample TLE; we don't assert exact orbital values (those belong to the
// SGP4 library), only that the derived longitude is well-formed and moves.
const (
	issTLE1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	issTLE2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

func TestOrbitalLongitudeFromTLE(t *testing.T) {
	epoch := time.Date(2021, 10, 2, 0, 0, 0, 0, time.UTC)

	lon, err := OrbitalLongitudeFromTLE(issTLE1, issTLE2, epoch)
	if err != nil {
		t.Fatalf("OrbitalLongitudeFromTLE: %v", err)
	}
	if lon < -180 || lon > 180 {
		t.Fatalf("longitude = %v, want within [-180, 180]", lon)
	}

	// Same epoch, same answer.
	again, err := OrbitalLongitudeFromTLE(issTLE1, issTLE2, epoch)
	if err != nil {
		t.Fatalf("OrbitalLongitudeFromTLE (again): %v", err)
	}
	if lon != again {
		t.Fatalf("longitude not deterministic: %v vs %v", lon, again)
	}

	// A LEO spacecraft moves between epochs 45 minutes apart.
	later, err := OrbitalLongitudeFromTLE(issTLE1, issTLE2, epoch.Add(45*time.Minute))
	if err != nil {
		t.Fatalf("OrbitalLongitudeFromTLE (later): %v", err)
	}
	if lon == later {
		t.Fatalf("longitude did not change across epochs: %v", lon)
	}
}
