package core

import "math"

// WGS84 ellipsoid and geostationary constants. All core geometry works in
// kilometres.
const (
	WGS84SemiMajorKm = 6378.137
	wgs84Flattening  = 1.0 / 298.257223563

	// GeostationaryAltKm is the fixed altitude of the geostationary belt
	// above the equator.
	GeostationaryAltKm = 35786.0

	// GeostationaryRadiusKm is the distance of a geostationary point from
	// the Earth's centre.
	GeostationaryRadiusKm = WGS84SemiMajorKm + GeostationaryAltKm

	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// Vec3 is an ECEF-style vector in kilometres.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// ECEFFromGeodetic converts geodetic latitude/longitude (degrees) and
// altitude (metres above the ellipsoid) to an ECEF position in kilometres,
// using the closed-form WGS84 conversion. No iteration, so per-call cost is
// bounded and identical inputs always produce identical outputs.
func ECEFFromGeodetic(latDeg, lonDeg, altM float64) Vec3 {
	lat := latDeg * degToRad
	lon := lonDeg * degToRad
	altKm := altM / 1000.0

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	e2 := wgs84Flattening * (2 - wgs84Flattening)
	n := WGS84SemiMajorKm / math.Sqrt(1-e2*sinLat*sinLat)

	return Vec3{
		X: (n + altKm) * cosLat * math.Cos(lon),
		Y: (n + altKm) * cosLat * math.Sin(lon),
		Z: (n*(1-e2) + altKm) * sinLat,
	}
}

// GeostationaryECEF returns the ECEF position of the fixed-altitude
// geostationary point at the given longitude (degrees).
func GeostationaryECEF(lonDeg float64) Vec3 {
	lon := lonDeg * degToRad
	return Vec3{
		X: GeostationaryRadiusKm * math.Cos(lon),
		Y: GeostationaryRadiusKm * math.Sin(lon),
		Z: 0,
	}
}

// LookAngle is the azimuth/elevation pair from the aircraft to a satellite.
type LookAngle struct {
	AzimuthDeg   float64 // [0, 360), compass bearing, 0 = true north
	ElevationDeg float64 // [-90, 90], negative = below the horizon

	// Degenerate is set when the horizontal projection of the pointing
	// vector is too small to define a meaningful azimuth (satellite at or
	// near zenith/nadir, or observer at a pole). The angle returned is a
	// clamped best effort; callers annotate it as a warning instead of
	// failing, and elevation still signals (un)usability.
	Degenerate bool
}

// LookAngles computes the look angle from an aircraft at the given geodetic
// position to the geostationary point at satLonDeg, by projecting the
// pointing vector into the local East-North-Up frame at the aircraft.
func LookAngles(latDeg, lonDeg, altM, satLonDeg float64) LookAngle {
	aircraft := ECEFFromGeodetic(latDeg, lonDeg, altM)
	sat := GeostationaryECEF(satLonDeg)
	v := sat.Sub(aircraft)

	lat := latDeg * degToRad
	lon := lonDeg * degToRad
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	sinLon, cosLon := math.Sin(lon), math.Cos(lon)

	east := -sinLon*v.X + cosLon*v.Y
	north := -sinLat*cosLon*v.X - sinLat*sinLon*v.Y + cosLat*v.Z
	up := cosLat*cosLon*v.X + cosLat*sinLon*v.Y + sinLat*v.Z

	horiz := math.Hypot(east, north)

	// Near-zero horizontal projection: azimuth is undefined. Clamp to 0
	// and flag rather than divide into noise.
	const horizEpsilonKm = 1e-9
	if horiz < horizEpsilonKm {
		el := 90.0
		if up < 0 {
			el = -90.0
		}
		return LookAngle{AzimuthDeg: 0, ElevationDeg: el, Degenerate: true}
	}

	az := math.Atan2(east, north) * radToDeg
	if az < 0 {
		az += 360
	}
	if az >= 360 {
		az -= 360
	}

	el := math.Atan2(up, horiz) * radToDeg
	if el > 90 {
		el = 90
	} else if el < -90 {
		el = -90
	}

	return LookAngle{AzimuthDeg: az, ElevationDeg: el}
}

// azimuthRange is a compass-bearing interval. Lo > Hi means the range wraps
// through north (e.g. [315, 45]).
type azimuthRange struct {
	Lo, Hi float64
}

// contains reports whether az falls inside the range, wrap-aware.
func (r azimuthRange) contains(az float64) bool {
	if r.Lo <= r.Hi {
		return az >= r.Lo && az <= r.Hi
	}
	return az >= r.Lo || az <= r.Hi
}
