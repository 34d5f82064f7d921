package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/signalsfoundry/satcom-planner/catalog"
	"github.com/signalsfoundry/satcom-planner/model"
)

// ErrNilCatalog is returned when a timeline is requested without a catalog.
var ErrNilCatalog = errors.New("nil catalog")

// ComputeTimeline runs the full pipeline for one mission: validate inputs,
// evaluate every constraint rule, reduce each transport to its availability
// partition, segment the combined timeline and derive advisories. The result
// is a pure function of (route, config, catalog contents).
func ComputeTimeline(route model.Route, cfg model.MissionConfig, cat *catalog.Catalog) (*model.MissionTimeline, error) {
	return ComputeTimelineSampled(route, cfg, cat, 0)
}

// ComputeTimelineSampled is ComputeTimeline with an explicit sampling
// cadence; a non-positive interval means DefaultSampleInterval.
func ComputeTimelineSampled(route model.Route, cfg model.MissionConfig, cat *catalog.Catalog, interval time.Duration) (*model.MissionTimeline, error) {
	if cat == nil {
		return nil, ErrNilCatalog
	}
	if err := route.Validate(); err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	if err := cfg.Validate(route); err != nil {
		return nil, fmt.Errorf("mission config: %w", err)
	}

	engine := NewRuleEngine(cat)
	engine.Interval = interval
	events := engine.Events(route, cfg)

	start, end := route.Start(), route.End()
	transports := make(map[model.Transport][]model.TransportInterval, len(model.Transports()))
	for _, transport := range model.Transports() {
		transports[transport] = ReduceTransport(transport, start, end, events)
	}

	segments, degraded, critical := SegmentTimeline(start, end, transports)

	return &model.MissionTimeline{
		MissionID:            cfg.MissionID,
		Start:                start,
		End:                  end,
		Segments:             segments,
		Advisories:           GenerateAdvisories(events),
		Transports:           transports,
		TotalDegradedSeconds: degraded,
		TotalCriticalSeconds: critical,
	}, nil
}
