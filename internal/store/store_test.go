package store

import (
	"fmt"
	"testing"
	"time"

	"firewatch/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func reading(room string, temp *float64, smoke *int, at time.Time) models.Reading {
	return models.Reading{RoomID: room, Timestamp: at, Temperature: temp, Smoke: smoke}
}

func roomState(t *testing.T, s *RoomStore, room string) models.RoomState {
	t.Helper()
	snaps, _ := s.Snapshot()
	snap, ok := snaps[room]
	if !ok {
		t.Fatalf("room %q not in snapshot", room)
	}
	return snap.State
}

func TestNew_RosterRoomsStartUnknown(t *testing.T) {
	s := New([]string{"B001", "R101", ""}, 0)
	snaps, fire := s.Snapshot()
	if fire {
		t.Fatalf("fresh store must not have the fire flag set")
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 roster rooms, got %d", len(snaps))
	}
	for id, snap := range snaps {
		if snap.State.Status != models.StatusUnknown {
			t.Fatalf("room %s: expected UNKNOWN, got %s", id, snap.State.Status)
		}
	}
}

func TestRecordReading_BelowThresholdIsNormal(t *testing.T) {
	s := New([]string{"R101"}, 10)
	now := time.Now()

	res := s.RecordReading(reading("R101", floatPtr(30), intPtr(100), now.UTC()), nil, now)
	if res.Status != models.StatusNormal {
		t.Fatalf("expected NORMAL, got %s", res.Status)
	}
	if res.Triggered || res.FirstFire {
		t.Fatalf("benign reading must not trigger: %+v", res)
	}
	if res.Details != "Temperature: 30°C, Smoke: 100" {
		t.Fatalf("unexpected details: %q", res.Details)
	}
}

func TestRecordReading_IncompleteDataDetail(t *testing.T) {
	s := New(nil, 10)
	now := time.Now()

	res := s.RecordReading(reading("R101", floatPtr(30), nil, now.UTC()), nil, now)
	if res.Status != models.StatusNormal {
		t.Fatalf("expected NORMAL, got %s", res.Status)
	}
	if res.Details != "Incomplete sensor data" {
		t.Fatalf("unexpected details: %q", res.Details)
	}
}

func TestRecordReading_FireIsStickyAndKeepsDetail(t *testing.T) {
	s := New([]string{"R101"}, 10)
	now := time.Now()

	res := s.RecordReading(reading("R101", floatPtr(40), nil, now.UTC()), []string{"High Temperature (40°C)"}, now)
	if res.Status != models.StatusAlertFire || !res.Triggered || !res.FirstFire {
		t.Fatalf("expected first fire, got %+v", res)
	}
	fireDetail := res.Details

	// A benign reading afterwards must not downgrade the room.
	res = s.RecordReading(reading("R101", floatPtr(22), intPtr(50), now.UTC()), nil, now.Add(time.Second))
	if res.Status != models.StatusAlertFire {
		t.Fatalf("fire must be sticky, got %s", res.Status)
	}
	if res.Details != fireDetail {
		t.Fatalf("fire detail must be kept, got %q", res.Details)
	}
	if res.FirstFire {
		t.Fatalf("FirstFire must only report once")
	}

	// Latest values still reflect the newest reading.
	st := roomState(t, s, "R101")
	if st.Temperature == nil || *st.Temperature != 22 {
		t.Fatalf("latest temperature not updated: %+v", st.Temperature)
	}
}

func TestRecordReading_SecondFireDoesNotReportFirstFire(t *testing.T) {
	s := New(nil, 10)
	now := time.Now()

	first := s.RecordReading(reading("R101", floatPtr(40), nil, now.UTC()), []string{"High Temperature (40°C)"}, now)
	second := s.RecordReading(reading("R202", nil, intPtr(500), now.UTC()), []string{"Smoke Detected"}, now)
	if !first.FirstFire {
		t.Fatalf("first fire not reported")
	}
	if second.FirstFire {
		t.Fatalf("global fire flag flipped twice")
	}
	_, fire := s.Snapshot()
	if !fire {
		t.Fatalf("global fire flag not set")
	}
}

func TestRecordReading_RingEvictsOldestAtCapacity(t *testing.T) {
	const capacity = 5
	s := New(nil, capacity)
	base := time.Now()

	for i := 0; i < capacity+3; i++ {
		temp := float64(20 + i)
		s.RecordReading(reading("R101", &temp, intPtr(i), base.Add(time.Duration(i)*time.Second).UTC()), nil, base)
	}

	snaps, _ := s.Snapshot()
	samples := snaps["R101"].Samples
	if len(samples) != capacity {
		t.Fatalf("expected %d samples, got %d", capacity, len(samples))
	}
	// The ring must hold the most recent readings in arrival order.
	for i, r := range samples {
		if want := 3 + i; *r.Smoke != want {
			t.Fatalf("sample %d: expected smoke %d, got %d", i, want, *r.Smoke)
		}
	}
}

func TestEvaluateStaleness_Transitions(t *testing.T) {
	const (
		staleAfter   = 8 * time.Second
		missingAfter = 15 * time.Second
	)
	s := New([]string{"R202", "R203"}, 10)
	start := time.Now()

	s.RecordReading(reading("R202", floatPtr(25), intPtr(10), start.UTC()), nil, start)
	s.RecordReading(reading("R203", floatPtr(25), intPtr(10), start.UTC()), nil, start)

	// Within the stale window: nothing changes.
	if got := s.EvaluateStaleness(start.Add(4*time.Second), staleAfter, missingAfter); len(got) != 0 {
		t.Fatalf("unexpected missing rooms: %v", got)
	}
	if st := roomState(t, s, "R202"); st.Status != models.StatusNormal {
		t.Fatalf("expected NORMAL, got %s", st.Status)
	}

	// R203 keeps reporting, R202 goes silent.
	later := start.Add(10 * time.Second)
	s.RecordReading(reading("R203", floatPtr(25), intPtr(10), later.UTC()), nil, later)

	if got := s.EvaluateStaleness(later, staleAfter, missingAfter); len(got) != 0 {
		t.Fatalf("stale edge must not report missing: %v", got)
	}
	if st := roomState(t, s, "R202"); st.Status != models.StatusStale {
		t.Fatalf("expected STALE, got %s", st.Status)
	}
	if st := roomState(t, s, "R203"); st.Status != models.StatusNormal {
		t.Fatalf("reporting room must stay NORMAL, got %s", st.Status)
	}

	// Past the missing timeout the alert fires exactly once.
	got := s.EvaluateStaleness(start.Add(16*time.Second), staleAfter, missingAfter)
	if len(got) != 1 || got[0] != "R202" {
		t.Fatalf("expected [R202], got %v", got)
	}
	if got := s.EvaluateStaleness(start.Add(20*time.Second), staleAfter, missingAfter); len(got) != 0 {
		t.Fatalf("missing alert re-fired: %v", got)
	}
	if st := roomState(t, s, "R202"); st.Status != models.StatusAlertMissing {
		t.Fatalf("expected ALERT_MISSING, got %s", st.Status)
	}
}

func TestEvaluateStaleness_SkipsFireAndUnknownRooms(t *testing.T) {
	s := New([]string{"B001"}, 10)
	now := time.Now()

	s.RecordReading(reading("R101", floatPtr(40), nil, now.UTC()), []string{"High Temperature (40°C)"}, now)

	got := s.EvaluateStaleness(now.Add(time.Hour), 8*time.Second, 15*time.Second)
	if len(got) != 0 {
		t.Fatalf("unexpected missing rooms: %v", got)
	}
	if st := roomState(t, s, "R101"); st.Status != models.StatusAlertFire {
		t.Fatalf("monitor must never touch a fire room, got %s", st.Status)
	}
	if st := roomState(t, s, "B001"); st.Status != models.StatusUnknown {
		t.Fatalf("never-reporting roster room must stay UNKNOWN, got %s", st.Status)
	}
}

func TestRecordReading_FreshDataClearsMissing(t *testing.T) {
	s := New([]string{"R202"}, 10)
	start := time.Now()

	s.RecordReading(reading("R202", floatPtr(25), intPtr(10), start.UTC()), nil, start)
	s.EvaluateStaleness(start.Add(16*time.Second), 8*time.Second, 15*time.Second)
	if st := roomState(t, s, "R202"); st.Status != models.StatusAlertMissing {
		t.Fatalf("setup failed: expected ALERT_MISSING, got %s", st.Status)
	}

	later := start.Add(20 * time.Second)
	res := s.RecordReading(reading("R202", floatPtr(25), intPtr(10), later.UTC()), nil, later)
	if res.Status != models.StatusNormal {
		t.Fatalf("fresh data must clear staleness, got %s", res.Status)
	}
}

func TestFireRoomCount(t *testing.T) {
	s := New(nil, 10)
	now := time.Now()
	for i := 0; i < 3; i++ {
		room := fmt.Sprintf("R%d", i)
		s.RecordReading(reading(room, floatPtr(40), nil, now.UTC()), []string{"High Temperature (40°C)"}, now)
	}
	s.RecordReading(reading("OK1", floatPtr(20), intPtr(1), now.UTC()), nil, now)

	if got := s.FireRoomCount(); got != 3 {
		t.Fatalf("expected 3 fire rooms, got %d", got)
	}
}
