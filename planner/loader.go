package planner

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/signalsfoundry/satcom-planner/model"
)

// internal JSON shapes, kept unexported so we're free to evolve them.
type missionsJSON struct {
	Missions []missionJSON `json:"missions"`
}

type missionJSON struct {
	ID     string         `json:"id"`
	Route  routeJSON      `json:"route"`
	Config missionCfgJSON `json:"config"`
}

type routeJSON struct {
	Waypoints []waypointJSON `json:"waypoints"`
}

type waypointJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	AltitudeM float64 `json:"altitude_m"`
	Time      string  `json:"time"` // RFC 3339
}

type missionCfgJSON struct {
	InitialXSatellite  string `json:"initial_x_satellite,omitempty"`
	InitialKaSatellite string `json:"initial_ka_satellite,omitempty"`

	Transitions []transitionJSON `json:"transitions,omitempty"`
	Outages     []outageJSON     `json:"outages,omitempty"`
	AARWindows  []aarWindowJSON  `json:"aar_windows,omitempty"`
}

type transitionJSON struct {
	Transport          string     `json:"transport"`
	FromSatellite      string     `json:"from_satellite"`
	ToSatellite        string     `json:"to_satellite"`
	ActualCoordinate   [2]float64 `json:"actual_coordinate"` // [lon, lat]
	ProjectedRouteTime string     `json:"projected_route_time"`
	Buffer             string     `json:"buffer,omitempty"` // Go duration, e.g. "15m"
}

type outageJSON struct {
	Transport string `json:"transport"`
	StartTime string `json:"start_time"`
	Duration  string `json:"duration"`
}

type aarWindowJSON struct {
	StartWaypoint int `json:"start_waypoint"`
	EndWaypoint   int `json:"end_waypoint"`
}

// LoadMissions reads a JSON mission batch from r. It fails on the first
// malformed entry; a batch with unparseable missions must not be partially
// trusted.
func LoadMissions(r io.Reader) ([]Mission, error) {
	var payload missionsJSON
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadMissions: decode failed: %w", err)
	}

	missions := make([]Mission, 0, len(payload.Missions))
	for _, jm := range payload.Missions {
		m, err := missionFromJSON(jm)
		if err != nil {
			return nil, fmt.Errorf("LoadMissions: mission %q: %w", jm.ID, err)
		}
		missions = append(missions, m)
	}
	return missions, nil
}

func missionFromJSON(jm missionJSON) (Mission, error) {
	m := Mission{ID: jm.ID}
	m.Config.MissionID = jm.ID
	m.Config.InitialXSatellite = jm.Config.InitialXSatellite
	m.Config.InitialKaSatellite = jm.Config.InitialKaSatellite

	for i, jw := range jm.Route.Waypoints {
		t, err := time.Parse(time.RFC3339, jw.Time)
		if err != nil {
			return m, fmt.Errorf("waypoint %d: bad time: %w", i, err)
		}
		m.Route.Waypoints = append(m.Route.Waypoints, model.Waypoint{
			Latitude:  jw.Latitude,
			Longitude: jw.Longitude,
			AltitudeM: jw.AltitudeM,
			Time:      t,
		})
	}

	for i, jt := range jm.Config.Transitions {
		transport, err := model.ParseTransport(jt.Transport)
		if err != nil {
			return m, fmt.Errorf("transition %d: %w", i, err)
		}
		at, err := time.Parse(time.RFC3339, jt.ProjectedRouteTime)
		if err != nil {
			return m, fmt.Errorf("transition %d: bad projected_route_time: %w", i, err)
		}
		var buffer time.Duration
		if jt.Buffer != "" {
			buffer, err = time.ParseDuration(jt.Buffer)
			if err != nil {
				return m, fmt.Errorf("transition %d: bad buffer: %w", i, err)
			}
		}
		m.Config.Transitions = append(m.Config.Transitions, model.TransitionEvent{
			Transport:          transport,
			FromSatellite:      jt.FromSatellite,
			ToSatellite:        jt.ToSatellite,
			ActualCoordinate:   model.LonLat{Lon: jt.ActualCoordinate[0], Lat: jt.ActualCoordinate[1]},
			ProjectedRouteTime: at,
			Buffer:             buffer,
		})
	}

	for i, jo := range jm.Config.Outages {
		transport, err := model.ParseTransport(jo.Transport)
		if err != nil {
			return m, fmt.Errorf("outage %d: %w", i, err)
		}
		start, err := time.Parse(time.RFC3339, jo.StartTime)
		if err != nil {
			return m, fmt.Errorf("outage %d: bad start_time: %w", i, err)
		}
		dur, err := time.ParseDuration(jo.Duration)
		if err != nil {
			return m, fmt.Errorf("outage %d: bad duration: %w", i, err)
		}
		m.Config.Outages = append(m.Config.Outages, model.OutageWindow{
			Transport: transport,
			StartTime: start,
			Duration:  dur,
		})
	}

	for _, jw := range jm.Config.AARWindows {
		m.Config.AARWindows = append(m.Config.AARWindows, model.AARWindow{
			StartWaypoint: jw.StartWaypoint,
			EndWaypoint:   jw.EndWaypoint,
		})
	}

	return m, nil
}
