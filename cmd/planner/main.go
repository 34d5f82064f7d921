package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/signalsfoundry/satcom-planner/catalog"
	"github.com/signalsfoundry/satcom-planner/internal/logging"
	"github.com/signalsfoundry/satcom-planner/internal/observability"
	"github.com/signalsfoundry/satcom-planner/model"
	"github.com/signalsfoundry/satcom-planner/planner"
)

func main() {
	catalogPath := flag.String("catalog", "configs/catalog.json", "Path to the satellite catalog JSON")
	missionsPath := flag.String("missions", "configs/missions.json", "Path to the mission batch JSON")
	workers := flag.Int("workers", runtime.NumCPU(), "Maximum missions computed concurrently")
	sampleInterval := flag.Duration("sample-interval", 0, "Route sampling interval (0 = default 60s)")
	metricsAddr := flag.String("metrics-addr", "", "Optional HTTP address for Prometheus /metrics; empty disables the listener")
	jsonOut := flag.Bool("json", false, "Emit full timelines as JSON instead of the segment table")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	collector, err := observability.NewPlannerCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	if *metricsAddr != "" {
		serveMetrics(*metricsAddr, collector, log)
	}

	cat := catalog.NewCatalog()
	summary := loadCatalog(ctx, log, cat, *catalogPath)
	log.Info(ctx, "catalog loaded",
		logging.Int("satellites", len(summary.SatelliteIDs)),
		logging.Int("polygons", summary.PolygonCount),
		logging.Int("split_rings", summary.SplitRings),
	)
	publishCatalogCounts(collector, cat)

	missions := loadMissions(ctx, log, *missionsPath)

	p := &planner.Planner{
		Catalog:        cat,
		Log:            log,
		Metrics:        collector,
		Workers:        *workers,
		SampleInterval: *sampleInterval,
	}

	results := p.ComputeAll(ctx, missions)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "mission %q: %v\n", res.Mission.ID, res.Err)
			continue
		}
		if *jsonOut {
			printJSON(res.Timeline)
		} else {
			printTimeline(res.Timeline)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func loadCatalog(ctx context.Context, log logging.Logger, cat *catalog.Catalog, path string) *catalog.CatalogSummary {
	f, err := os.Open(path)
	if err != nil {
		log.Error(ctx, "failed to open catalog", logging.String("path", path), logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	summary, err := catalog.LoadCatalog(cat, f)
	if err != nil {
		log.Error(ctx, "failed to load catalog", logging.String("path", path), logging.String("error", err.Error()))
		os.Exit(1)
	}
	return summary
}

func loadMissions(ctx context.Context, log logging.Logger, path string) []planner.Mission {
	f, err := os.Open(path)
	if err != nil {
		log.Error(ctx, "failed to open missions", logging.String("path", path), logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	missions, err := planner.LoadMissions(f)
	if err != nil {
		log.Error(ctx, "failed to load missions", logging.String("path", path), logging.String("error", err.Error()))
		os.Exit(1)
	}
	return missions
}

func publishCatalogCounts(collector *observability.PlannerCollector, cat *catalog.Catalog) {
	counts := make(map[string]int)
	for transport, n := range cat.Counts() {
		counts[string(transport)] = n
	}
	collector.SetCatalogCounts(counts)
}

func serveMetrics(addr string, collector *observability.PlannerCollector, log logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	go func() {
		srv := &http.Server{Addr: addr, Handler: mux}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
}

func printJSON(tl *model.MissionTimeline) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tl); err != nil {
		fmt.Fprintf(os.Stderr, "encode timeline: %v\n", err)
	}
}

func printTimeline(tl *model.MissionTimeline) {
	fmt.Printf("Mission %s  (%s to %s, %d segments)\n",
		tl.MissionID, tl.Start.UTC().Format(time.RFC3339), tl.End.UTC().Format(time.RFC3339), len(tl.Segments))

	for _, seg := range tl.Segments {
		line := fmt.Sprintf("  %s  %s  %-8s",
			seg.StartTime.UTC().Format("15:04:05"), seg.EndTime.UTC().Format("15:04:05"), seg.Status)
		for _, transport := range seg.ImpactedTransports {
			line += " " + string(transport)
		}
		fmt.Println(line)
		for _, reason := range seg.Reasons {
			fmt.Printf("      - %s\n", reason)
		}
	}

	if len(tl.Advisories) > 0 {
		fmt.Println("  Advisories:")
		for _, adv := range tl.Advisories {
			marker := "info"
			if adv.Actionable {
				marker = "ACTION"
			}
			fmt.Printf("    [%s] %s %s: %s\n", marker, adv.Time.UTC().Format("15:04:05"), adv.Transport, adv.Message)
		}
	}

	fmt.Printf("  Totals: degraded %.0fs, critical %.0fs\n\n", tl.TotalDegradedSeconds, tl.TotalCriticalSeconds)
}
