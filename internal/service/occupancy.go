package service

import (
	"context"

	"firewatch/internal/models"
	"firewatch/internal/repository"
)

// OccupancyService answers people-count queries against the table the
// external detector maintains.
type OccupancyService struct {
	occupancy repository.OccupancyRepo
}

func NewOccupancyService(occupancy repository.OccupancyRepo) *OccupancyService {
	return &OccupancyService{occupancy: occupancy}
}

// GetRoom returns one room's occupancy, or nil if the room is unknown.
// A never-reported count (-1) is surfaced as 0 people.
func (s *OccupancyService) GetRoom(ctx context.Context, roomID string) (*models.RoomOccupancy, error) {
	occ, err := s.occupancy.Get(ctx, roomID)
	if err != nil || occ == nil {
		return nil, err
	}
	if occ.PeopleCount < 0 {
		occ.PeopleCount = 0
	}
	return occ, nil
}

// GetBuilding returns the building total with a per-room breakdown of the
// occupied rooms.
func (s *OccupancyService) GetBuilding(ctx context.Context) (models.BuildingOccupancy, error) {
	return s.occupancy.Building(ctx)
}
