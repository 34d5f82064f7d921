package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/signalsfoundry/satcom-planner/model"
)

// SegmentTimeline merges the per-transport interval sequences into one
// mission-wide segment timeline. A segment boundary exists wherever any
// transport changes state; each segment is classified by how many
// transports are impaired (not available) inside it, and adjacent segments
// with identical classification and impacted set are coalesced.
//
// It also returns the total seconds spent degraded and critical, for the
// timeline summary.
func SegmentTimeline(start, end time.Time, transports map[model.Transport][]model.TransportInterval) ([]model.TimelineSegment, float64, float64) {
	if !start.Before(end) {
		return nil, 0, 0
	}

	boundaries := []time.Time{start, end}
	for _, intervals := range transports {
		for _, iv := range intervals {
			boundaries = append(boundaries, iv.StartTime, iv.EndTime)
		}
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].Before(boundaries[j]) })
	boundaries = dedupeTimes(boundaries)

	// Walking cursor per transport: interval sequences are sorted and
	// gapless, so each sub-interval advances monotonically.
	cursors := make(map[model.Transport]int, len(transports))

	var segments []model.TimelineSegment
	for i := 0; i+1 < len(boundaries); i++ {
		a, b := boundaries[i], boundaries[i+1]

		var impacted []model.Transport
		var reasons []string
		for _, transport := range model.Transports() {
			intervals := transports[transport]
			j := cursors[transport]
			for j < len(intervals) && !intervals[j].EndTime.After(a) {
				j++
			}
			cursors[transport] = j
			if j >= len(intervals) {
				panic(fmt.Sprintf("segment: %s intervals do not cover %s", transport, a))
			}
			iv := intervals[j]
			if iv.StartTime.After(a) || iv.EndTime.Before(b) {
				panic(fmt.Sprintf("segment: %s interval does not contain [%s, %s)", transport, a, b))
			}
			if iv.State != model.StateAvailable {
				impacted = append(impacted, transport)
				reasons = append(reasons, iv.Reasons...)
			}
		}

		cur := model.TimelineSegment{
			StartTime:          a,
			EndTime:            b,
			Status:             model.StatusForImpairedCount(len(impacted)),
			ImpactedTransports: impacted,
			Reasons:            sortedUnique(reasons),
		}

		if n := len(segments); n > 0 && segments[n-1].Status == cur.Status &&
			equalTransports(segments[n-1].ImpactedTransports, cur.ImpactedTransports) &&
			equalStrings(segments[n-1].Reasons, cur.Reasons) {
			segments[n-1].EndTime = b
			continue
		}
		segments = append(segments, cur)
	}

	var degraded, critical float64
	for _, seg := range segments {
		secs := seg.EndTime.Sub(seg.StartTime).Seconds()
		switch seg.Status {
		case model.StatusDegraded:
			degraded += secs
		case model.StatusCritical:
			critical += secs
		}
	}
	return segments, degraded, critical
}

func equalTransports(a, b []model.Transport) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
