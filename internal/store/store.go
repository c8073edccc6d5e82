package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"firewatch/internal/models"
)

// DefaultCapacity is the per-room sample ring size when none is configured.
const DefaultCapacity = 50

// RoomStore is the single source of truth for room status. Every room's
// state and its sample ring are mutated only behind the store mutex, so a
// reading for a room, the staleness sweep, and dashboard snapshots all
// observe a consistent view. One coarse lock is enough at roster scale;
// all gateway calls happen outside of it.
type RoomStore struct {
	mu       sync.RWMutex
	rooms    map[string]*roomEntry
	capacity int
	fireSeen bool
}

type roomEntry struct {
	state   models.RoomState
	samples []models.Reading
}

// New builds a store pre-populated with the known room roster. Roster rooms
// start as UNKNOWN until their first reading arrives.
func New(roster []string, capacity int) *RoomStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &RoomStore{
		rooms:    make(map[string]*roomEntry, len(roster)),
		capacity: capacity,
	}
	for _, id := range roster {
		if id == "" {
			continue
		}
		s.rooms[id] = newRoomEntry(id)
	}
	return s
}

func newRoomEntry(roomID string) *roomEntry {
	return &roomEntry{
		state: models.RoomState{
			RoomID:  roomID,
			Status:  models.StatusUnknown,
			Details: "No data received yet",
		},
	}
}

// RecordResult reports what recording a reading did to its room.
type RecordResult struct {
	Status    models.RoomStatus
	Details   string
	Triggered bool // the reading crossed a fire threshold
	FirstFire bool // this reading flipped the global fire flag
}

// RecordReading applies one reading to its room atomically: freshness
// timestamps and latest values update unconditionally, the sample joins the
// ring (evicting the oldest past capacity), and the status transition runs
// under the non-empty-reasons rule. ALERT_FIRE is sticky: a benign reading
// never downgrades a room already in that state. Unknown rooms are created
// lazily. now must come from time.Now so LastSeen keeps its monotonic clock.
func (s *RoomStore) RecordReading(r models.Reading, reasons []string, now time.Time) RecordResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rooms[r.RoomID]
	if !ok {
		e = newRoomEntry(r.RoomID)
		s.rooms[r.RoomID] = e
	}

	// Latest values always reflect the newest reading, whatever the status.
	e.state.LastSeen = now
	e.state.LastUpdate = r.Timestamp
	e.state.Temperature = r.Temperature
	e.state.Smoke = r.Smoke

	e.samples = append(e.samples, r)
	if len(e.samples) > s.capacity {
		copy(e.samples, e.samples[1:])
		e.samples = e.samples[:s.capacity]
	}

	res := RecordResult{Triggered: len(reasons) > 0}
	switch {
	case len(reasons) > 0:
		if !s.fireSeen {
			s.fireSeen = true
			res.FirstFire = true
		}
		e.state.Status = models.StatusAlertFire
		e.state.Details = "FIRE! " + strings.Join(reasons, ", ")
	case e.state.Status == models.StatusAlertFire:
		// sticky: keep the fire status and its detail string
	default:
		e.state.Status = models.StatusNormal
		e.state.Details = normalDetails(r)
	}

	res.Status = e.state.Status
	res.Details = e.state.Details
	return res
}

func normalDetails(r models.Reading) string {
	if r.Temperature == nil || r.Smoke == nil {
		return "Incomplete sensor data"
	}
	return fmt.Sprintf("Temperature: %g°C, Smoke: %d", *r.Temperature, *r.Smoke)
}

// EvaluateStaleness runs one monitor sweep: rooms past the missing timeout
// move to ALERT_MISSING, rooms past the stale timeout move to STALE. Rooms in
// ALERT_FIRE are never touched, and rooms that have never reported stay
// UNKNOWN. Clearing back to NORMAL happens only through RecordReading, never
// here. The returned slice holds the rooms that entered ALERT_MISSING during
// this sweep, i.e. the ones whose missing alert must fire now.
func (s *RoomStore) EvaluateStaleness(now time.Time, staleAfter, missingAfter time.Duration) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var missing []string
	for id, e := range s.rooms {
		st := &e.state
		if st.Status == models.StatusAlertFire || st.LastSeen.IsZero() {
			continue
		}
		idle := now.Sub(st.LastSeen)
		switch {
		case idle > missingAfter:
			if st.Status != models.StatusAlertMissing {
				st.Status = models.StatusAlertMissing
				st.Details = fmt.Sprintf("Data not received for > %d seconds.", int(missingAfter.Seconds()))
				missing = append(missing, id)
			}
		case idle > staleAfter:
			if st.Status != models.StatusStale {
				st.Status = models.StatusStale
				st.Details = fmt.Sprintf("Data not updated for > %d sec", int(staleAfter.Seconds()))
			}
		}
	}
	return missing
}

// RoomSnapshot pairs a copy of one room's state with its recent samples,
// oldest first.
type RoomSnapshot struct {
	State   models.RoomState
	Samples []models.Reading
}

// Snapshot returns a consistent copy of every room plus the global fire flag.
func (s *RoomStore) Snapshot() (map[string]RoomSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]RoomSnapshot, len(s.rooms))
	for id, e := range s.rooms {
		samples := make([]models.Reading, len(e.samples))
		copy(samples, e.samples)
		out[id] = RoomSnapshot{State: e.state, Samples: samples}
	}
	return out, s.fireSeen
}

// FireRoomCount reports how many rooms are currently in ALERT_FIRE.
func (s *RoomStore) FireRoomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.rooms {
		if e.state.Status == models.StatusAlertFire {
			n++
		}
	}
	return n
}
