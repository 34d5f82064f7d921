package core

import (
	"testing"
	"time"

	"github.com/signalsfoundry/satcom-planner/model"
)

func checkPartition(t *testing.T, start, end time.Time, intervals []model.TransportInterval) {
	t.Helper()
	if len(intervals) == 0 {
		t.Fatal("no intervals")
	}
	if !intervals[0].StartTime.Equal(start) {
		t.Fatalf("first interval starts %v, want %v", intervals[0].StartTime, start)
	}
	if !intervals[len(intervals)-1].EndTime.Equal(end) {
		t.Fatalf("last interval ends %v, want %v", intervals[len(intervals)-1].EndTime, end)
	}
	for i := 1; i < len(intervals); i++ {
		if !intervals[i].StartTime.Equal(intervals[i-1].EndTime) {
			t.Fatalf("gap/overlap between interval %d and %d", i-1, i)
		}
	}
}

func TestReduceNoEventsYieldsSingleAvailableInterval(t *testing.T) {
	start := missionStart
	end := start.Add(4 * time.Hour)

	intervals := ReduceTransport(model.TransportKu, start, end, nil)
	checkPartition(t, start, end, intervals)
	if len(intervals) != 1 || intervals[0].State != model.StateAvailable {
		t.Fatalf("intervals = %#v, want one available interval", intervals)
	}
	if len(intervals[0].Reasons) != 0 {
		t.Fatalf("available interval carries reasons: %v", intervals[0].Reasons)
	}
}

func TestReduceOfflineOutranksDegraded(t *testing.T) {
	start := missionStart
	end := start.Add(4 * time.Hour)
	events := []model.MissionEvent{
		{
			Transport: model.TransportKa, Kind: model.EventTransitionBuffer,
			StartTime: start.Add(time.Hour), EndTime: start.Add(3 * time.Hour),
			Severity: model.SeverityDegraded, Reason: "settling",
		},
		{
			Transport: model.TransportKa, Kind: model.EventManualOutage,
			StartTime: start.Add(90 * time.Minute), EndTime: start.Add(2 * time.Hour),
			Severity: model.SeverityOffline, Reason: "operator-declared Ka outage",
		},
	}

	intervals := ReduceTransport(model.TransportKa, start, end, events)
	checkPartition(t, start, end, intervals)

	wantStates := []model.AvailabilityState{
		model.StateAvailable, // [0, 1h)
		model.StateDegraded,  // [1h, 1h30)
		model.StateOffline,   // [1h30, 2h)
		model.StateDegraded,  // [2h, 3h)
		model.StateAvailable, // [3h, 4h)
	}
	if len(intervals) != len(wantStates) {
		t.Fatalf("interval count = %d, want %d (%#v)", len(intervals), len(wantStates), intervals)
	}
	for i, want := range wantStates {
		if intervals[i].State != want {
			t.Fatalf("interval %d state = %v, want %v", i, intervals[i].State, want)
		}
	}

	// The offline stretch unions the reasons of both active events.
	offline := intervals[2]
	if len(offline.Reasons) != 2 {
		t.Fatalf("offline reasons = %v, want both events' reasons", offline.Reasons)
	}
}

func TestReduceIgnoresOtherTransportsAndInfoEvents(t *testing.T) {
	start := missionStart
	end := start.Add(time.Hour)
	events := []model.MissionEvent{
		{
			Transport: model.TransportKa, Kind: model.EventManualOutage,
			StartTime: start, EndTime: end,
			Severity: model.SeverityOffline, Reason: "Ka outage",
		},
		{
			Transport: model.TransportX, Kind: model.EventAARBlackout,
			StartTime: start, EndTime: end,
			Severity: model.SeverityInfo, Reason: "refueling advisory",
		},
	}

	intervals := ReduceTransport(model.TransportX, start, end, events)
	checkPartition(t, start, end, intervals)
	if len(intervals) != 1 || intervals[0].State != model.StateAvailable {
		t.Fatalf("X intervals = %#v, want one available interval", intervals)
	}
}

func TestReduceClampsEventsToMissionSpan(t *testing.T) {
	start := missionStart
	end := start.Add(time.Hour)
	events := []model.MissionEvent{{
		Transport: model.TransportKu, Kind: model.EventManualOutage,
		StartTime: start.Add(-time.Hour), EndTime: start.Add(30 * time.Minute),
		Severity: model.SeverityOffline, Reason: "carryover outage",
	}}

	intervals := ReduceTransport(model.TransportKu, start, end, events)
	checkPartition(t, start, end, intervals)
	if len(intervals) != 2 {
		t.Fatalf("interval count = %d, want 2 (%#v)", len(intervals), intervals)
	}
	if intervals[0].State != model.StateOffline || !intervals[0].EndTime.Equal(start.Add(30*time.Minute)) {
		t.Fatalf("clamped offline interval = %#v", intervals[0])
	}
}

func TestReduceMergesIdenticalAdjacentIntervals(t *testing.T) {
	start := missionStart
	end := start.Add(time.Hour)
	// Two abutting offline events with the same reason must not produce a
	// boundary in the output.
	events := []model.MissionEvent{
		{
			Transport: model.TransportKa, Kind: model.EventCoverageGap,
			StartTime: start.Add(10 * time.Minute), EndTime: start.Add(20 * time.Minute),
			Severity: model.SeverityOffline, Reason: "outside KA-1 coverage (measured)",
		},
		{
			Transport: model.TransportKa, Kind: model.EventCoverageGap,
			StartTime: start.Add(20 * time.Minute), EndTime: start.Add(30 * time.Minute),
			Severity: model.SeverityOffline, Reason: "outside KA-1 coverage (measured)",
		},
	}

	intervals := ReduceTransport(model.TransportKa, start, end, events)
	checkPartition(t, start, end, intervals)
	if len(intervals) != 3 {
		t.Fatalf("interval count = %d, want 3 (%#v)", len(intervals), intervals)
	}
	if intervals[1].State != model.StateOffline ||
		!intervals[1].StartTime.Equal(start.Add(10*time.Minute)) ||
		!intervals[1].EndTime.Equal(start.Add(30*time.Minute)) {
		t.Fatalf("merged offline interval = %#v", intervals[1])
	}
}
