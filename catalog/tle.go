package catalog

import (
	"fmt"
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// OrbitalLongitudeFromTLE derives the sub-satellite longitude (degrees east,
// in [-180, 180]) of a satellite at the given instant by SGP4 propagation.
// For a geostationary TLE this is the slot longitude the planner's look-angle
// geometry needs; the catalog importer uses it so X-band entries can be
// supplied as TLEs instead of explicit longitudes.
func OrbitalLongitudeFromTLE(line1, line2 string, at time.Time) (float64, error) {
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)

	at = at.UTC()
	year, month, day := at.Date()
	hour, min, sec := at.Clock()

	posECI, _ := satellite.Propagate(sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	if math.IsNaN(posECEF.X) || math.IsNaN(posECEF.Y) ||
		(posECEF.X == 0 && posECEF.Y == 0 && posECEF.Z == 0) {
		return 0, fmt.Errorf("TLE propagation produced no position")
	}

	lon := math.Atan2(posECEF.Y, posECEF.X) * 180.0 / math.Pi
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon, nil
}
