package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRouteTooShort     = errors.New("route needs at least 2 waypoints")
	ErrRouteNonMonotonic = errors.New("route timestamps must be strictly increasing")
	ErrRouteBadCoords    = errors.New("route waypoint coordinates out of range")
)

// Waypoint is one timestamped point of the planned flight route.
type Waypoint struct {
	Latitude  float64   `json:"latitude"`  // degrees, [-90, 90]
	Longitude float64   `json:"longitude"` // degrees, [-180, 180]
	AltitudeM float64   `json:"altitude_m"`
	Time      time.Time `json:"time"`
}

// Route is the ordered, timestamped waypoint sequence produced by the
// route-timing subsystem. The core treats it as immutable.
type Route struct {
	Waypoints []Waypoint `json:"waypoints"`
}

// Validate rejects routes the pipeline cannot evaluate: fewer than two
// waypoints, non-increasing timestamps, or out-of-range coordinates.
// Validation happens before any computation begins.
func (r Route) Validate() error {
	if len(r.Waypoints) < 2 {
		return ErrRouteTooShort
	}
	for i, wp := range r.Waypoints {
		if wp.Latitude < -90 || wp.Latitude > 90 || wp.Longitude < -180 || wp.Longitude > 180 {
			return fmt.Errorf("%w: waypoint %d at (%.4f, %.4f)", ErrRouteBadCoords, i, wp.Latitude, wp.Longitude)
		}
		if i > 0 && !r.Waypoints[i-1].Time.Before(wp.Time) {
			return fmt.Errorf("%w: waypoint %d", ErrRouteNonMonotonic, i)
		}
	}
	return nil
}

// Start returns the timestamp of the first waypoint.
func (r Route) Start() time.Time { return r.Waypoints[0].Time }

// End returns the timestamp of the last waypoint.
func (r Route) End() time.Time { return r.Waypoints[len(r.Waypoints)-1].Time }

// Duration is the total mission span.
func (r Route) Duration() time.Duration { return r.End().Sub(r.Start()) }
