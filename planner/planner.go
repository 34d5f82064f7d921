// Package planner runs timeline computation for batches of missions with
// bounded concurrency, wiring in logging, tracing and metrics around the
// pure core pipeline.
package planner

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/signalsfoundry/satcom-planner/catalog"
	"github.com/signalsfoundry/satcom-planner/core"
	"github.com/signalsfoundry/satcom-planner/internal/logging"
	"github.com/signalsfoundry/satcom-planner/internal/observability"
	"github.com/signalsfoundry/satcom-planner/model"
)

const tracerName = "github.com/signalsfoundry/satcom-planner/planner"

// Mission pairs a route with its communication configuration.
type Mission struct {
	ID     string
	Route  model.Route
	Config model.MissionConfig
}

// Result is the outcome of computing one mission's timeline.
type Result struct {
	Mission  Mission
	Timeline *model.MissionTimeline
	Err      error
}

// Planner computes mission timelines against a shared catalog.
type Planner struct {
	Catalog *catalog.Catalog
	Log     logging.Logger
	Metrics *observability.PlannerCollector

	// Workers bounds batch concurrency; 0 or negative means serial.
	Workers int

	// SampleInterval overrides the rule engine's sampling cadence when
	// positive.
	SampleInterval time.Duration
}

// New creates a planner over the catalog with a noop logger and no metrics.
func New(cat *catalog.Catalog) *Planner {
	return &Planner{Catalog: cat, Log: logging.Noop()}
}

// Compute runs the full pipeline for one mission.
func (p *Planner) Compute(ctx context.Context, m Mission) Result {
	log := p.Log
	if log == nil {
		log = logging.Noop()
	}
	if m.Config.MissionID == "" {
		m.Config.MissionID = m.ID
	}
	ctx = logging.ContextWithMissionID(ctx, m.Config.MissionID)
	ctx, log = logging.WithMissionLogger(ctx, log)

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "planner.Compute")
	span.SetAttributes(
		attribute.String("mission.id", m.Config.MissionID),
		attribute.Int("mission.waypoints", len(m.Route.Waypoints)),
	)
	defer span.End()

	start := time.Now()
	timeline, err := p.computeTimeline(m)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.Metrics.ObserveTimeline("error", elapsed)
		log.Error(ctx, "timeline computation failed", logging.String("error", err.Error()))
		return Result{Mission: m, Err: err}
	}

	p.Metrics.ObserveTimeline("ok", elapsed)
	log.Info(ctx, "timeline computed",
		logging.Int("segments", len(timeline.Segments)),
		logging.Int("advisories", len(timeline.Advisories)),
		logging.Any("degraded_seconds", timeline.TotalDegradedSeconds),
		logging.Any("critical_seconds", timeline.TotalCriticalSeconds),
	)
	return Result{Mission: m, Timeline: timeline, Err: nil}
}

func (p *Planner) computeTimeline(m Mission) (*model.MissionTimeline, error) {
	return core.ComputeTimelineSampled(m.Route, m.Config, p.Catalog, p.SampleInterval)
}

// ComputeAll computes every mission's timeline with at most Workers in
// flight, returning results in input order. Missions are independent, so a
// failure in one never aborts the batch.
func (p *Planner) ComputeAll(ctx context.Context, missions []Mission) []Result {
	results := make([]Result, len(missions))
	if len(missions) == 0 {
		return results
	}

	workers := p.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(missions) {
		workers = len(missions)
	}

	type job struct {
		idx     int
		mission Mission
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = p.Compute(ctx, j.mission)
			}
		}()
	}

	for i, m := range missions {
		select {
		case jobs <- job{idx: i, mission: m}:
		case <-ctx.Done():
			results[i] = Result{Mission: m, Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()
	return results
}
