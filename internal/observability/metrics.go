package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PlannerCollector bundles the Prometheus metrics for timeline computation
// and exposes a ready-made /metrics handler for the CLI's optional listener.
type PlannerCollector struct {
	gatherer prometheus.Gatherer

	TimelinesComputed *prometheus.CounterVec
	ComputeDurations  prometheus.Histogram
	CatalogSatellites *prometheus.GaugeVec
}

// NewPlannerCollector registers the planner metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewPlannerCollector(reg prometheus.Registerer) (*PlannerCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	computed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_timelines_total",
		Help: "Total number of mission timelines computed, labeled by outcome.",
	}, []string{"outcome"})
	computed, err := registerCounterVec(reg, computed, "planner_timelines_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_timeline_duration_seconds",
		Help:    "Wall-clock time spent computing one mission timeline.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})
	durations, err = registerHistogram(reg, durations, "planner_timeline_duration_seconds")
	if err != nil {
		return nil, err
	}

	satellites := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planner_catalog_satellites",
		Help: "Current number of catalog satellites, labeled by transport.",
	}, []string{"transport"})
	satellites, err = registerGaugeVec(reg, satellites, "planner_catalog_satellites")
	if err != nil {
		return nil, err
	}

	return &PlannerCollector{
		gatherer:          gatherer,
		TimelinesComputed: computed,
		ComputeDurations:  durations,
		CatalogSatellites: satellites,
	}, nil
}

// ObserveTimeline records one timeline computation. Outcome is "ok" or
// "error".
func (c *PlannerCollector) ObserveTimeline(outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.TimelinesComputed != nil {
		c.TimelinesComputed.WithLabelValues(outcome).Inc()
	}
	if c.ComputeDurations != nil {
		c.ComputeDurations.Observe(elapsed.Seconds())
	}
}

// SetCatalogCounts publishes the per-transport satellite counts.
func (c *PlannerCollector) SetCatalogCounts(counts map[string]int) {
	if c == nil || c.CatalogSatellites == nil {
		return
	}
	for transport, n := range counts {
		c.CatalogSatellites.WithLabelValues(transport).Set(float64(n))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PlannerCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
