package model

import (
	"errors"
	"fmt"
	"time"
)

// DefaultTransitionBuffer is the settling window applied on each side of a
// satellite transition.
const DefaultTransitionBuffer = 15 * time.Minute

var (
	ErrBadTransition = errors.New("invalid transition")
	ErrBadOutage     = errors.New("invalid outage window")
	ErrBadAARWindow  = errors.New("invalid AAR window")
)

// TransitionEvent is an operator-specified satellite handover.
//
// ActualCoordinate is where the handover really happens (possibly off the
// planned route; kept for display), while ProjectedRouteTime is the handover
// instant projected onto the route's own timeline and is what sequencing
// uses. Both are retained as parallel immutable fields.
type TransitionEvent struct {
	Transport          Transport     `json:"transport"`
	FromSatellite      string        `json:"from_satellite"`
	ToSatellite        string        `json:"to_satellite"`
	ActualCoordinate   LonLat        `json:"actual_coordinate"`
	ProjectedRouteTime time.Time     `json:"projected_route_time"`
	Buffer             time.Duration `json:"buffer,omitempty"`
}

// BufferDuration returns the configured buffer, defaulting to 15 minutes.
func (t TransitionEvent) BufferDuration() time.Duration {
	if t.Buffer > 0 {
		return t.Buffer
	}
	return DefaultTransitionBuffer
}

// OutageWindow is a manually declared outage for Ka or Ku.
type OutageWindow struct {
	Transport Transport     `json:"transport"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// AARWindow marks an air-to-air refueling window by waypoint index. While
// active, the X-band azimuth exclusion range is inverted.
type AARWindow struct {
	StartWaypoint int `json:"start_waypoint"`
	EndWaypoint   int `json:"end_waypoint"`
}

// MissionConfig is the validated per-mission configuration supplied by
// external collaborators: initial satellite assignments, planned
// transitions, manual outages and refueling windows.
type MissionConfig struct {
	MissionID string `json:"mission_id"`

	InitialXSatellite  string `json:"initial_x_satellite,omitempty"`
	InitialKaSatellite string `json:"initial_ka_satellite,omitempty"`

	Transitions []TransitionEvent `json:"transitions,omitempty"`
	Outages     []OutageWindow    `json:"outages,omitempty"`
	AARWindows  []AARWindow       `json:"aar_windows,omitempty"`
}

// Validate checks the config against the route it will be evaluated with.
func (c MissionConfig) Validate(route Route) error {
	for i, tr := range c.Transitions {
		if tr.Transport != TransportX && tr.Transport != TransportKa {
			return fmt.Errorf("%w: transition %d transport %q (only X and Ka hand over)", ErrBadTransition, i, tr.Transport)
		}
		if tr.ProjectedRouteTime.IsZero() {
			return fmt.Errorf("%w: transition %d has no projected route time", ErrBadTransition, i)
		}
	}
	for i, ow := range c.Outages {
		if ow.Transport != TransportKa && ow.Transport != TransportKu {
			return fmt.Errorf("%w: outage %d transport %q (only Ka and Ku take manual outages)", ErrBadOutage, i, ow.Transport)
		}
		if ow.Duration <= 0 {
			return fmt.Errorf("%w: outage %d has non-positive duration", ErrBadOutage, i)
		}
	}
	for i, w := range c.AARWindows {
		if w.StartWaypoint < 0 || w.EndWaypoint >= len(route.Waypoints) || w.StartWaypoint >= w.EndWaypoint {
			return fmt.Errorf("%w: window %d [%d, %d] outside route of %d waypoints",
				ErrBadAARWindow, i, w.StartWaypoint, w.EndWaypoint, len(route.Waypoints))
		}
	}
	return nil
}
