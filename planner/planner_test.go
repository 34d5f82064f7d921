package planner

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/signalsfoundry/satcom-planner/catalog"
	"github.com/signalsfoundry/satcom-planner/model"
)

var start = time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)

func lonPtr(v float64) *float64 { return &v }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.NewCatalog()
	sats := []*model.SatelliteDefinition{
		{ID: "X-50E", Transport: model.TransportX, OrbitalLongitudeDeg: lonPtr(50)},
		{ID: "KA-1", Transport: model.TransportKa, Polygons: []model.CoveragePolygon{{
			Name: "band",
			Ring: []model.LonLat{{Lon: -20, Lat: -40}, {Lon: 30, Lat: -40}, {Lon: 30, Lat: 40}, {Lon: -20, Lat: 40}},
		}}},
		{ID: "KU-1", Transport: model.TransportKu},
	}
	for _, sat := range sats {
		if err := cat.AddSatellite(sat); err != nil {
			t.Fatalf("AddSatellite(%s): %v", sat.ID, err)
		}
	}
	return cat
}

func testMission(id string) Mission {
	return Mission{
		ID: id,
		Route: model.Route{Waypoints: []model.Waypoint{
			{Latitude: 0, Longitude: 0, AltitudeM: 10000, Time: start},
			{Latitude: 0, Longitude: 10, AltitudeM: 10000, Time: start.Add(4 * time.Hour)},
		}},
		Config: model.MissionConfig{
			MissionID:          id,
			InitialXSatellite:  "X-50E",
			InitialKaSatellite: "KA-1",
		},
	}
}

func TestComputeProducesTimeline(t *testing.T) {
	p := New(testCatalog(t))

	res := p.Compute(context.Background(), testMission("m1"))
	if res.Err != nil {
		t.Fatalf("Compute: %v", res.Err)
	}
	if res.Timeline.MissionID != "m1" {
		t.Fatalf("mission ID = %q, want m1", res.Timeline.MissionID)
	}
	if len(res.Timeline.Segments) == 0 {
		t.Fatal("timeline has no segments")
	}
}

func TestComputeAllPreservesInputOrder(t *testing.T) {
	p := New(testCatalog(t))
	p.Workers = 4

	missions := []Mission{
		testMission("alpha"),
		{ID: "broken"}, // empty route fails validation
		testMission("bravo"),
		testMission("charlie"),
	}

	results := p.ComputeAll(context.Background(), missions)
	if len(results) != len(missions) {
		t.Fatalf("result count = %d, want %d", len(results), len(missions))
	}
	for i, res := range results {
		if res.Mission.ID != missions[i].ID {
			t.Fatalf("result %d is for %q, want %q", i, res.Mission.ID, missions[i].ID)
		}
	}
	if results[1].Err == nil {
		t.Fatal("expected the empty-route mission to fail")
	}
	for _, i := range []int{0, 2, 3} {
		if results[i].Err != nil {
			t.Fatalf("mission %q failed: %v", results[i].Mission.ID, results[i].Err)
		}
	}
}

func TestComputeAllSampleIntervalOverride(t *testing.T) {
	p := New(testCatalog(t))
	p.SampleInterval = 10 * time.Second

	res := p.Compute(context.Background(), testMission("fine-grained"))
	if res.Err != nil {
		t.Fatalf("Compute: %v", res.Err)
	}
}

func TestLoadMissionsParsesBatch(t *testing.T) {
	payload := `{
	  "missions": [
	    {
	      "id": "m1",
	      "route": {"waypoints": [
	        {"latitude": 0, "longitude": 0, "altitude_m": 10000, "time": "2026-03-01T06:00:00Z"},
	        {"latitude": 0, "longitude": 10, "altitude_m": 10000, "time": "2026-03-01T10:00:00Z"}
	      ]},
	      "config": {
	        "initial_x_satellite": "X-50E",
	        "initial_ka_satellite": "KA-1",
	        "transitions": [{
	          "transport": "Ka",
	          "from_satellite": "KA-1",
	          "to_satellite": "KA-2",
	          "actual_coordinate": [5.2, 0.1],
	          "projected_route_time": "2026-03-01T08:00:00Z",
	          "buffer": "20m"
	        }],
	        "outages": [{"transport": "Ku", "start_time": "2026-03-01T07:00:00Z", "duration": "30m"}],
	        "aar_windows": [{"start_waypoint": 0, "end_waypoint": 1}]
	      }
	    }
	  ]
	}`

	missions, err := LoadMissions(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("LoadMissions: %v", err)
	}
	if len(missions) != 1 {
		t.Fatalf("mission count = %d, want 1", len(missions))
	}

	m := missions[0]
	if m.Config.MissionID != "m1" || len(m.Route.Waypoints) != 2 {
		t.Fatalf("mission = %#v", m)
	}
	tr := m.Config.Transitions[0]
	if tr.Transport != model.TransportKa || tr.Buffer != 20*time.Minute {
		t.Fatalf("transition = %#v", tr)
	}
	if tr.ActualCoordinate.Lon != 5.2 || tr.ActualCoordinate.Lat != 0.1 {
		t.Fatalf("actual coordinate = %#v", tr.ActualCoordinate)
	}
	if m.Config.Outages[0].Duration != 30*time.Minute {
		t.Fatalf("outage = %#v", m.Config.Outages[0])
	}
	if m.Config.AARWindows[0].EndWaypoint != 1 {
		t.Fatalf("aar window = %#v", m.Config.AARWindows[0])
	}
}

func TestLoadMissionsFailsFast(t *testing.T) {
	cases := map[string]string{
		"bad waypoint time":  `{"missions":[{"id":"m","route":{"waypoints":[{"latitude":0,"longitude":0,"time":"yesterday"}]}}]}`,
		"bad transport":      `{"missions":[{"id":"m","config":{"transitions":[{"transport":"S","projected_route_time":"2026-03-01T08:00:00Z"}]}}]}`,
		"bad outage duration": `{"missions":[{"id":"m","config":{"outages":[{"transport":"Ku","start_time":"2026-03-01T07:00:00Z","duration":"soon"}]}}]}`,
	}
	for name, payload := range cases {
		if _, err := LoadMissions(strings.NewReader(payload)); err == nil {
			t.Fatalf("%s: expected load error", name)
		}
	}
}
