package model

import "time"

// EventKind names the rule that produced a MissionEvent.
type EventKind string

const (
	// EventAzimuthConflict: the X-band look angle fell inside the active
	// azimuth exclusion cone for a maximal run of samples.
	EventAzimuthConflict EventKind = "azimuth_conflict"
	// EventTransitionBuffer: settling window on one side of a satellite
	// handover (operator-specified or coverage-crossing-derived).
	EventTransitionBuffer EventKind = "transition_buffer"
	// EventManualOutage: operator-declared Ka/Ku outage window.
	EventManualOutage EventKind = "manual_outage"
	// EventGroundProximity: window around takeoff or landing.
	EventGroundProximity EventKind = "ground_proximity"
	// EventMissingConfiguration: no satellite assigned for a route span.
	EventMissingConfiguration EventKind = "missing_configuration"
	// EventCoverageGap: aircraft outside every coverage polygon of the
	// active satellite (or below the elevation fallback threshold).
	EventCoverageGap EventKind = "coverage_gap"
	// EventAARBlackout: informational comm-blackout advisory spanning a
	// refueling window; never changes availability state.
	EventAARBlackout EventKind = "aar_blackout"
)

// MissionEvent is one typed constraint violation (or advisory marker) on a
// transport's timeline. Events are ephemeral: the rule engine produces them
// and the state reducer consumes them immediately; they are never persisted.
type MissionEvent struct {
	Transport Transport
	Kind      EventKind
	StartTime time.Time
	EndTime   time.Time
	Severity  Severity
	Reason    string
}
