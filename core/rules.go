package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/signalsfoundry/satcom-planner/catalog"
	"github.com/signalsfoundry/satcom-planner/model"
)

// FallbackMinElevationDeg is the elevation threshold used to approximate
// coverage when a satellite has no footprint polygons configured.
const FallbackMinElevationDeg = 5.0

// GroundProximityWindow is the degraded window applied to every transport
// around takeoff and landing.
const GroundProximityWindow = 15 * time.Minute

// X-band azimuth exclusion cones. The tail-mounted antenna cannot track
// through the aft quarter in normal ops; while a tanker is connected the
// blocked bearings invert and wrap through north.
var (
	xExclusionNormal = azimuthRange{Lo: 135, Hi: 225}
	xExclusionAAR    = azimuthRange{Lo: 315, Hi: 45}
)

// RuleEngine combines geometry, coverage and operator-specified
// transitions/outages/AAR windows into a chronological stream of typed
// MissionEvents per transport. It holds no per-mission state: Events may be
// called concurrently for independent missions against the same catalog.
type RuleEngine struct {
	Catalog *catalog.Catalog

	// Interval is the route sampling cadence; 0 means
	// DefaultSampleInterval.
	Interval time.Duration
}

// NewRuleEngine creates a rule engine over the given catalog.
func NewRuleEngine(cat *catalog.Catalog) *RuleEngine {
	return &RuleEngine{Catalog: cat}
}

func (e *RuleEngine) interval() time.Duration {
	if e.Interval > 0 {
		return e.Interval
	}
	return DefaultSampleInterval
}

// Events evaluates every rule against the route and mission config and
// returns the combined event stream, sorted by start time with ties broken
// by (transport, kind) so output is deterministic and testable.
func (e *RuleEngine) Events(route model.Route, cfg model.MissionConfig) []model.MissionEvent {
	var events []model.MissionEvent
	events = append(events, e.xEvents(route, cfg)...)
	events = append(events, e.kaEvents(route, cfg)...)
	events = append(events, e.kuEvents(route)...)
	events = append(events, e.operatorTransitionEvents(route, cfg)...)
	events = append(events, e.outageEvents(route, cfg)...)
	events = append(events, e.groundProximityEvents(route)...)
	events = append(events, e.aarEvents(route, cfg)...)

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		if a.Transport != b.Transport {
			return a.Transport < b.Transport
		}
		return a.Kind < b.Kind
	})
	return events
}

//
// ---------- time spans and satellite assignment ----------
//

type timeSpan struct {
	start, end time.Time
}

func (s timeSpan) empty() bool { return !s.start.Before(s.end) }

// clampSpan intersects [s, e] with [lo, hi].
func clampSpan(s, e, lo, hi time.Time) timeSpan {
	if s.Before(lo) {
		s = lo
	}
	if e.After(hi) {
		e = hi
	}
	return timeSpan{start: s, end: e}
}

type satSpan struct {
	timeSpan
	id  string
	sat *model.SatelliteDefinition
}

// assignmentSpans partitions the mission span into runs of a single
// assigned satellite for the transport, derived from the initial assignment
// and the operator transitions. An empty ID means no satellite could be
// resolved for that run.
func (e *RuleEngine) assignmentSpans(route model.Route, cfg model.MissionConfig, transport model.Transport) []satSpan {
	start, end := route.Start(), route.End()

	var transitions []model.TransitionEvent
	for _, tr := range cfg.Transitions {
		if tr.Transport == transport {
			transitions = append(transitions, tr)
		}
	}
	sort.SliceStable(transitions, func(i, j int) bool {
		return transitions[i].ProjectedRouteTime.Before(transitions[j].ProjectedRouteTime)
	})

	initial := cfg.InitialXSatellite
	if transport == model.TransportKa {
		initial = cfg.InitialKaSatellite
	}
	if initial == "" && len(transitions) > 0 {
		initial = transitions[0].FromSatellite
	}
	if initial == "" {
		if sats := e.Catalog.SatellitesFor(transport); len(sats) > 0 {
			initial = sats[0].ID
		}
	}

	var spans []satSpan
	cur, curStart := initial, start
	for _, tr := range transitions {
		t := tr.ProjectedRouteTime
		if !t.After(start) {
			// Handover before (or at) takeoff: only the target matters.
			cur = tr.ToSatellite
			continue
		}
		if !t.Before(end) {
			break
		}
		spans = append(spans, satSpan{
			timeSpan: timeSpan{start: curStart, end: t},
			id:       cur,
			sat:      e.Catalog.Satellite(cur),
		})
		cur, curStart = tr.ToSatellite, t
	}
	spans = append(spans, satSpan{
		timeSpan: timeSpan{start: curStart, end: end},
		id:       cur,
		sat:      e.Catalog.Satellite(cur),
	})

	out := spans[:0]
	for _, s := range spans {
		if !s.empty() {
			out = append(out, s)
		}
	}
	return out
}

// runsWhere samples the [start, end] portion of the route at the engine
// interval and returns the maximal runs over which pred holds, with run
// boundaries refined by binary search to within CrossingTolerance.
func (e *RuleEngine) runsWhere(route model.Route, start, end time.Time, pred func(Sample) bool) []timeSpan {
	if !start.Before(end) {
		return nil
	}
	sampler := NewSpanSampler(route, start, end, e.interval())
	predAt := func(t time.Time) bool { return pred(SampleAt(route, t)) }

	first, _ := sampler.Next()
	prev, prevT := pred(first), first.Time
	var runs []timeSpan
	var runStart time.Time
	if prev {
		runStart = start
	}

	for {
		s, ok := sampler.Next()
		if !ok {
			break
		}
		cur := pred(s)
		if cur != prev {
			edge := RefineCrossing(prevT, s.Time, CrossingTolerance, predAt)
			if cur {
				runStart = edge
			} else {
				runs = append(runs, timeSpan{start: runStart, end: edge})
			}
		}
		prev, prevT = cur, s.Time
	}
	if prev {
		runs = append(runs, timeSpan{start: runStart, end: end})
	}
	return runs
}

//
// ---------- AAR windows ----------
//

type aarSchedule []timeSpan

func (s aarSchedule) active(t time.Time) bool {
	for _, w := range s {
		if !t.Before(w.start) && !t.After(w.end) {
			return true
		}
	}
	return false
}

func aarSpans(route model.Route, cfg model.MissionConfig) aarSchedule {
	var out aarSchedule
	for _, w := range cfg.AARWindows {
		out = append(out, timeSpan{
			start: route.Waypoints[w.StartWaypoint].Time,
			end:   route.Waypoints[w.EndWaypoint].Time,
		})
	}
	return out
}

//
// ---------- X-band rules ----------
//

func (e *RuleEngine) xEvents(route model.Route, cfg model.MissionConfig) []model.MissionEvent {
	aar := aarSpans(route, cfg)

	var events []model.MissionEvent
	for _, span := range e.assignmentSpans(route, cfg, model.TransportX) {
		if span.sat == nil || span.sat.OrbitalLongitudeDeg == nil {
			events = append(events, missingConfigEvent(model.TransportX, span, "no X-band satellite assigned"))
			continue
		}
		satLon := *span.sat.OrbitalLongitudeDeg

		violating := func(s Sample) bool {
			la := LookAngles(s.Lat, s.Lon, s.AltM, satLon)
			excl := xExclusionNormal
			if aar.active(s.Time) {
				excl = xExclusionAAR
			}
			return excl.contains(la.AzimuthDeg)
		}

		for _, run := range e.runsWhere(route, span.start, span.end, violating) {
			events = append(events, model.MissionEvent{
				Transport: model.TransportX,
				Kind:      model.EventAzimuthConflict,
				StartTime: run.start,
				EndTime:   run.end,
				Severity:  model.SeverityOffline,
				Reason:    e.azimuthConflictReason(route, satLon, aar, run),
			})
		}
	}
	return events
}

// azimuthConflictReason inspects the run and names the exclusion cone(s)
// that were violated, with a warning suffix when any sampled look angle had
// to be clamped (near-zenith / near-pole geometry).
func (e *RuleEngine) azimuthConflictReason(route model.Route, satLon float64, aar aarSchedule, run timeSpan) string {
	var normal, inverted, degenerate bool
	sampler := NewSpanSampler(route, run.start, run.end, e.interval())
	for {
		s, ok := sampler.Next()
		if !ok {
			break
		}
		la := LookAngles(s.Lat, s.Lon, s.AltM, satLon)
		if la.Degenerate {
			degenerate = true
		}
		if aar.active(s.Time) {
			inverted = true
		} else {
			normal = true
		}
	}

	reason := "azimuth within exclusion cone [135°,225°]"
	switch {
	case normal && inverted:
		reason = "azimuth within exclusion cone (normal and inverted air-refueling ranges)"
	case inverted:
		reason = "azimuth within inverted exclusion cone [315°,45°] during air refueling"
	}
	if degenerate {
		reason += "; look angle clamped near zenith"
	}
	return reason
}

//
// ---------- Ka-band rules ----------
//

func (e *RuleEngine) kaEvents(route model.Route, cfg model.MissionConfig) []model.MissionEvent {
	var events []model.MissionEvent
	for _, span := range e.assignmentSpans(route, cfg, model.TransportKa) {
		if span.sat == nil {
			events = append(events, missingConfigEvent(model.TransportKa, span, "no Ka-band satellite assigned"))
			continue
		}
		events = append(events, e.kaCoverageEvents(route, span)...)
	}
	return events
}

// coveragePredicate returns the containment test for a satellite: polygon
// containment when a footprint is configured, otherwise the
// elevation-threshold approximation. The gap reason is tagged "measured"
// vs. "estimated" accordingly.
func coveragePredicate(sat *model.SatelliteDefinition) (pred func(Sample) bool, gapReason string, ok bool) {
	if len(sat.Polygons) > 0 {
		return func(s Sample) bool {
			return CoveredBy(sat, s.Lat, s.Lon)
		}, fmt.Sprintf("outside %s coverage (measured)", sat.ID), true
	}
	if sat.OrbitalLongitudeDeg != nil {
		satLon := *sat.OrbitalLongitudeDeg
		return func(s Sample) bool {
			return LookAngles(s.Lat, s.Lon, s.AltM, satLon).ElevationDeg >= FallbackMinElevationDeg
		}, fmt.Sprintf("below %.0f° elevation to %s (estimated)", FallbackMinElevationDeg, sat.ID), true
	}
	return nil, "", false
}

func (e *RuleEngine) kaCoverageEvents(route model.Route, span satSpan) []model.MissionEvent {
	activePred, gapReason, ok := coveragePredicate(span.sat)
	if !ok {
		return []model.MissionEvent{missingConfigEvent(model.TransportKa, span,
			fmt.Sprintf("Ka-band satellite %s has neither footprint nor orbital longitude", span.id))}
	}

	// Union coverage across every configured Ka satellite: a period where
	// the active satellite drops out but an alternate picks up is a
	// coverage-derived handover, not a gap.
	alternates := e.kaAlternates(span.sat)
	unionPred := func(s Sample) bool {
		if activePred(s) {
			return true
		}
		return e.coveringAlternate(alternates, s) != nil
	}

	var events []model.MissionEvent

	for _, gap := range e.runsWhere(route, span.start, span.end, func(s Sample) bool { return !unionPred(s) }) {
		events = append(events, model.MissionEvent{
			Transport: model.TransportKa,
			Kind:      model.EventCoverageGap,
			StartTime: gap.start,
			EndTime:   gap.end,
			Severity:  model.SeverityOffline,
			Reason:    gapReason,
		})
	}

	for _, loss := range e.runsWhere(route, span.start, span.end, func(s Sample) bool { return !activePred(s) }) {
		// A loss starting mid-span where an alternate still covers is a
		// coverage-crossing-derived transition: emit the same settling
		// buffers an operator-specified handover would get.
		if !loss.start.After(span.start) {
			continue
		}
		if alt := e.coveringAlternate(alternates, SampleAt(route, loss.start)); alt != nil {
			events = append(events, transitionBufferPair(model.TransportKa, span.id, alt.ID,
				loss.start, model.DefaultTransitionBuffer, route)...)
		}
	}
	return events
}

func (e *RuleEngine) kaAlternates(active *model.SatelliteDefinition) []*model.SatelliteDefinition {
	var out []*model.SatelliteDefinition
	for _, sat := range e.Catalog.SatellitesFor(model.TransportKa) {
		if sat.ID != active.ID {
			out = append(out, sat)
		}
	}
	return out
}

// coveringAlternate returns the first (by ID order) alternate Ka satellite
// covering the sampled position, or nil.
func (e *RuleEngine) coveringAlternate(alternates []*model.SatelliteDefinition, s Sample) *model.SatelliteDefinition {
	for _, sat := range alternates {
		pred, _, ok := coveragePredicate(sat)
		if ok && pred(s) {
			return sat
		}
	}
	return nil
}

//
// ---------- Ku-band rules ----------
//

// Ku is modeled as constant always-available: no automatic geometry or
// coverage rule applies, only manual outages (handled separately). The one
// failure mode is a catalog with no Ku definition at all.
func (e *RuleEngine) kuEvents(route model.Route) []model.MissionEvent {
	if len(e.Catalog.SatellitesFor(model.TransportKu)) > 0 {
		return nil
	}
	span := satSpan{timeSpan: timeSpan{start: route.Start(), end: route.End()}}
	return []model.MissionEvent{missingConfigEvent(model.TransportKu, span, "no Ku-band satellite configured")}
}

//
// ---------- operator-specified transitions, outages, ground proximity ----------
//

func (e *RuleEngine) operatorTransitionEvents(route model.Route, cfg model.MissionConfig) []model.MissionEvent {
	var events []model.MissionEvent
	for _, tr := range cfg.Transitions {
		events = append(events, transitionBufferPair(tr.Transport, tr.FromSatellite, tr.ToSatellite,
			tr.ProjectedRouteTime, tr.BufferDuration(), route)...)
	}
	return events
}

// transitionBufferPair emits the two settling windows around a handover
// instant: [t-buffer, t] and [t, t+buffer], clamped to the mission span.
// The halves carry distinct reasons; with identical reasons the downstream
// interval merging would erase the boundary at the handover instant.
func transitionBufferPair(transport model.Transport, from, to string, at time.Time, buffer time.Duration, route model.Route) []model.MissionEvent {
	halves := []struct {
		span   timeSpan
		reason string
	}{
		{clampSpan(at.Add(-buffer), at, route.Start(), route.End()),
			fmt.Sprintf("%s transition %s->%s settling before handover", transport, from, to)},
		{clampSpan(at, at.Add(buffer), route.Start(), route.End()),
			fmt.Sprintf("%s transition %s->%s settling after handover", transport, from, to)},
	}

	var events []model.MissionEvent
	for _, half := range halves {
		if half.span.empty() {
			continue
		}
		events = append(events, model.MissionEvent{
			Transport: transport,
			Kind:      model.EventTransitionBuffer,
			StartTime: half.span.start,
			EndTime:   half.span.end,
			Severity:  model.SeverityDegraded,
			Reason:    half.reason,
		})
	}
	return events
}

func (e *RuleEngine) outageEvents(route model.Route, cfg model.MissionConfig) []model.MissionEvent {
	var events []model.MissionEvent
	for _, ow := range cfg.Outages {
		span := clampSpan(ow.StartTime, ow.StartTime.Add(ow.Duration), route.Start(), route.End())
		if span.empty() {
			continue
		}
		events = append(events, model.MissionEvent{
			Transport: ow.Transport,
			Kind:      model.EventManualOutage,
			StartTime: span.start,
			EndTime:   span.end,
			Severity:  model.SeverityOffline,
			Reason:    fmt.Sprintf("operator-declared %s outage", ow.Transport),
		})
	}
	return events
}

func (e *RuleEngine) groundProximityEvents(route model.Route) []model.MissionEvent {
	takeoff := clampSpan(route.Start(), route.Start().Add(GroundProximityWindow), route.Start(), route.End())
	landing := clampSpan(route.End().Add(-GroundProximityWindow), route.End(), route.Start(), route.End())

	var events []model.MissionEvent
	for _, transport := range model.Transports() {
		events = append(events,
			model.MissionEvent{
				Transport: transport,
				Kind:      model.EventGroundProximity,
				StartTime: takeoff.start,
				EndTime:   takeoff.end,
				Severity:  model.SeverityDegraded,
				Reason:    "ground proximity after takeoff",
			},
			model.MissionEvent{
				Transport: transport,
				Kind:      model.EventGroundProximity,
				StartTime: landing.start,
				EndTime:   landing.end,
				Severity:  model.SeverityDegraded,
				Reason:    "ground proximity before landing",
			})
	}
	return events
}

// aarEvents marks every refueling window with an informational blackout
// advisory. The event carries no severity and never changes any transport's
// state; it exists so the advisory list can span the full window regardless
// of what the X-band geometry actually does inside it.
func (e *RuleEngine) aarEvents(route model.Route, cfg model.MissionConfig) []model.MissionEvent {
	var events []model.MissionEvent
	for _, w := range aarSpans(route, cfg) {
		events = append(events, model.MissionEvent{
			Transport: model.TransportX,
			Kind:      model.EventAARBlackout,
			StartTime: w.start,
			EndTime:   w.end,
			Severity:  model.SeverityInfo,
			Reason:    "air-to-air refueling comm blackout advisory",
		})
	}
	return events
}

func missingConfigEvent(transport model.Transport, span satSpan, reason string) model.MissionEvent {
	if span.id != "" && span.sat == nil {
		reason = fmt.Sprintf("%s satellite %q not in catalog", transport, span.id)
	}
	return model.MissionEvent{
		Transport: transport,
		Kind:      model.EventMissingConfiguration,
		StartTime: span.start,
		EndTime:   span.end,
		Severity:  model.SeverityOffline,
		Reason:    reason,
	}
}
