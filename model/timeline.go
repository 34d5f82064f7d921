package model

import "time"

// TransportInterval is one maximal run of a single availability state on one
// transport. Per transport, intervals form a contiguous, gap-free,
// overlap-free partition of the mission duration.
type TransportInterval struct {
	Transport Transport         `json:"transport"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	State     AvailabilityState `json:"state"`
	Reasons   []string          `json:"reasons,omitempty"`
}

// TimelineSegment is a maximal contiguous time window sharing one mission
// status classification. Segments are contiguous, ordered, overlap-free, and
// their union equals the full mission span.
type TimelineSegment struct {
	StartTime          time.Time     `json:"start_time"`
	EndTime            time.Time     `json:"end_time"`
	Status             SegmentStatus `json:"status"`
	ImpactedTransports []Transport   `json:"impacted_transports,omitempty"`
	Reasons            []string      `json:"reasons,omitempty"`
}

// Duration of the segment.
func (s TimelineSegment) Duration() time.Duration { return s.EndTime.Sub(s.StartTime) }

// Advisory is operator-facing text derived from a state transition.
// Actionable advisories require operator intervention (X azimuth conflicts);
// the rest are informational.
type Advisory struct {
	Time        time.Time `json:"time"`
	Transport   Transport `json:"transport"`
	Actionable  bool      `json:"actionable"`
	Message     string    `json:"message"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

// MissionTimeline is the final result handed to external layers for
// persistence, export and dashboards. The core only produces the value.
type MissionTimeline struct {
	MissionID string    `json:"mission_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`

	Segments   []TimelineSegment `json:"segments"`
	Advisories []Advisory        `json:"advisories,omitempty"`

	// Per-transport interval partitions, kept for export and diagnostics.
	Transports map[Transport][]TransportInterval `json:"transports"`

	TotalDegradedSeconds float64 `json:"total_degraded_seconds"`
	TotalCriticalSeconds float64 `json:"total_critical_seconds"`
}
