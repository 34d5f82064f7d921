package core

import (
	"fmt"
	"sort"

	"github.com/signalsfoundry/satcom-planner/model"
)

// GenerateAdvisories turns the event stream into operator-facing guidance.
// X-band azimuth conflicts are actionable (the transmitter must be disabled
// by hand before the antenna sweeps through the exclusion cone); everything
// else degraded-or-worse on Ka/Ku, plus refueling blackouts, is
// informational. Ground-proximity windows are routine and produce nothing.
func GenerateAdvisories(events []model.MissionEvent) []model.Advisory {
	var advisories []model.Advisory
	for _, ev := range events {
		switch {
		case ev.Kind == model.EventAzimuthConflict:
			advisories = append(advisories, model.Advisory{
				Time:       ev.StartTime,
				Transport:  ev.Transport,
				Actionable: true,
				Message: fmt.Sprintf("disable X-band transmit from %s to %s: %s",
					ev.StartTime.UTC().Format("15:04:05"), ev.EndTime.UTC().Format("15:04:05"), ev.Reason),
				WindowStart: ev.StartTime,
				WindowEnd:   ev.EndTime,
			})
		case ev.Kind == model.EventAARBlackout:
			advisories = append(advisories, model.Advisory{
				Time:        ev.StartTime,
				Transport:   ev.Transport,
				Message:     fmt.Sprintf("expect X-band blackout during air refueling, %s to %s", ev.StartTime.UTC().Format("15:04:05"), ev.EndTime.UTC().Format("15:04:05")),
				WindowStart: ev.StartTime,
				WindowEnd:   ev.EndTime,
			})
		case (ev.Transport == model.TransportKa || ev.Transport == model.TransportKu) &&
			ev.Severity >= model.SeverityDegraded && ev.Kind != model.EventGroundProximity:
			advisories = append(advisories, model.Advisory{
				Time:        ev.StartTime,
				Transport:   ev.Transport,
				Message:     fmt.Sprintf("%s %s: %s", ev.Transport, ev.Severity.State(), ev.Reason),
				WindowStart: ev.StartTime,
				WindowEnd:   ev.EndTime,
			})
		}
	}

	sort.SliceStable(advisories, func(i, j int) bool {
		if !advisories[i].Time.Equal(advisories[j].Time) {
			return advisories[i].Time.Before(advisories[j].Time)
		}
		return advisories[i].Transport < advisories[j].Transport
	})
	return advisories
}
