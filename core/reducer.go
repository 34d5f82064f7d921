package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/signalsfoundry/satcom-planner/model"
)

// ReduceTransport folds a transport's events into a gapless, non-overlapping
// sequence of availability intervals covering [start, end]. Severity follows
// max-precedence: any offline event wins over degraded, degraded wins over
// available. Info-severity events never affect state. Reasons are the
// sorted union of the reasons of every state-affecting event active over
// the interval.
//
// The returned intervals always partition [start, end] exactly; a violation
// indicates a reducer bug and panics rather than returning a silently
// wrong timeline.
func ReduceTransport(transport model.Transport, start, end time.Time, events []model.MissionEvent) []model.TransportInterval {
	if !start.Before(end) {
		return nil
	}

	type span struct {
		s, e     time.Time
		severity model.Severity
		reason   string
	}
	var spans []span
	for _, ev := range events {
		if ev.Transport != transport || ev.Severity <= model.SeverityInfo {
			continue
		}
		c := clampSpan(ev.StartTime, ev.EndTime, start, end)
		if c.empty() {
			continue
		}
		spans = append(spans, span{s: c.start, e: c.end, severity: ev.Severity, reason: ev.Reason})
	}

	// Sweep over the union of all span boundaries plus the mission edges.
	boundaries := make([]time.Time, 0, 2*len(spans)+2)
	boundaries = append(boundaries, start, end)
	for _, sp := range spans {
		boundaries = append(boundaries, sp.s, sp.e)
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].Before(boundaries[j]) })
	boundaries = dedupeTimes(boundaries)

	var intervals []model.TransportInterval
	for i := 0; i+1 < len(boundaries); i++ {
		a, b := boundaries[i], boundaries[i+1]

		severity := model.Severity(0)
		var reasons []string
		for _, sp := range spans {
			if !sp.s.After(a) && !sp.e.Before(b) {
				if sp.severity > severity {
					severity = sp.severity
				}
				reasons = append(reasons, sp.reason)
			}
		}

		state := model.StateAvailable
		if severity > model.SeverityInfo {
			state = severity.State()
		} else {
			reasons = nil
		}

		cur := model.TransportInterval{
			Transport: transport,
			StartTime: a,
			EndTime:   b,
			State:     state,
			Reasons:   sortedUnique(reasons),
		}

		// Merge with the previous interval when nothing observable changed.
		if n := len(intervals); n > 0 && intervals[n-1].State == cur.State && equalStrings(intervals[n-1].Reasons, cur.Reasons) {
			intervals[n-1].EndTime = b
			continue
		}
		intervals = append(intervals, cur)
	}

	verifyPartition(transport, start, end, intervals)
	return intervals
}

func verifyPartition(transport model.Transport, start, end time.Time, intervals []model.TransportInterval) {
	if len(intervals) == 0 {
		panic(fmt.Sprintf("reduce %s: empty interval set", transport))
	}
	if !intervals[0].StartTime.Equal(start) || !intervals[len(intervals)-1].EndTime.Equal(end) {
		panic(fmt.Sprintf("reduce %s: intervals do not span mission", transport))
	}
	for i := 1; i < len(intervals); i++ {
		if !intervals[i].StartTime.Equal(intervals[i-1].EndTime) {
			panic(fmt.Sprintf("reduce %s: gap or overlap at %s", transport, intervals[i].StartTime))
		}
	}
}

func dedupeTimes(ts []time.Time) []time.Time {
	out := ts[:0]
	for _, t := range ts {
		if len(out) == 0 || !t.Equal(out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return out
}

func sortedUnique(ss []string) []string {
	if len(ss) == 0 {
		return nil
	}
	sort.Strings(ss)
	out := ss[:0]
	for _, s := range ss {
		if len(out) == 0 || s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
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
