package service

import (
	"context"
	"time"

	"firewatch/internal/logger"
	"firewatch/internal/models"
	"firewatch/internal/repository"
	"firewatch/internal/store"
)

const trendLabelLayout = "15:04:05"

// LiveDataService assembles the dashboard payload from the room store and
// the externally maintained occupancy table.
type LiveDataService struct {
	store     *store.RoomStore
	occupancy repository.OccupancyRepo
	log       *logger.Logger
}

func NewLiveDataService(st *store.RoomStore, occupancy repository.OccupancyRepo, log *logger.Logger) *LiveDataService {
	return &LiveDataService{store: st, occupancy: occupancy, log: log}
}

// GetLiveData returns every known room's status, trend arrays (oldest first),
// and people count, plus the global fire flag. An occupancy read failure
// degrades the counts to -1 rather than failing the dashboard.
func (s *LiveDataService) GetLiveData(ctx context.Context) (models.LiveData, error) {
	snaps, fireSeen := s.store.Snapshot()

	counts, err := s.occupancy.Counts(ctx)
	if err != nil {
		s.log.Errorw("failed to read people counts", "err", err)
		counts = nil
	}

	rooms := make(map[string]models.RoomLiveView, len(snaps))
	for id, snap := range snaps {
		view := models.RoomLiveView{
			Status:       snap.State.Status,
			Details:      snap.State.Details,
			Temperature:  snap.State.Temperature,
			Smoke:        snap.State.Smoke,
			PeopleCount:  -1,
			Labels:       make([]string, 0, len(snap.Samples)),
			Temperatures: make([]*float64, 0, len(snap.Samples)),
			SmokeValues:  make([]*int, 0, len(snap.Samples)),
		}
		if !snap.State.LastUpdate.IsZero() {
			view.LastUpdateISO = snap.State.LastUpdate.Format(time.RFC3339Nano)
		}
		if c, ok := counts[id]; ok {
			view.PeopleCount = c
		}
		for _, r := range snap.Samples {
			view.Labels = append(view.Labels, r.Timestamp.Local().Format(trendLabelLayout))
			view.Temperatures = append(view.Temperatures, r.Temperature)
			view.SmokeValues = append(view.SmokeValues, r.Smoke)
		}
		rooms[id] = view
	}

	return models.LiveData{Rooms: rooms, FireAlertTriggered: fireSeen}, nil
}
