package model

// AvailabilityState is the per-transport availability classification.
type AvailabilityState string

const (
	StateAvailable AvailabilityState = "available"
	StateDegraded  AvailabilityState = "degraded"
	StateOffline   AvailabilityState = "offline"
)

// Severity classifies a MissionEvent's effect on its transport. Ordering
// matters: a higher value is a worse condition, and the reducer resolves
// overlapping events by taking the maximum ("worse wins").
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityDegraded
	SeverityOffline
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityDegraded:
		return "degraded"
	case SeverityOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// State maps an event severity to the availability state it forces.
// SeverityInfo events never change availability state.
func (s Severity) State() AvailabilityState {
	switch s {
	case SeverityDegraded:
		return StateDegraded
	case SeverityOffline:
		return StateOffline
	default:
		return StateAvailable
	}
}

// SegmentStatus is the mission-level classification of a timeline segment.
type SegmentStatus string

const (
	StatusNominal  SegmentStatus = "nominal"
	StatusDegraded SegmentStatus = "degraded"
	StatusCritical SegmentStatus = "critical"
)

// StatusForImpairedCount classifies a segment by the number of transports
// that are not in the available state.
func StatusForImpairedCount(n int) SegmentStatus {
	switch {
	case n == 0:
		return StatusNominal
	case n == 1:
		return StatusDegraded
	default:
		return StatusCritical
	}
}
