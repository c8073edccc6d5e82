package service

import (
	"context"

	"firewatch/internal/models"
	"firewatch/internal/repository"
)

type IncidentsService struct {
	incidents repository.IncidentRepo
}

func NewIncidentsService(incidents repository.IncidentRepo) *IncidentsService {
	return &IncidentsService{incidents: incidents}
}

func (s *IncidentsService) List(ctx context.Context) ([]models.Incident, error) {
	return s.incidents.List(ctx)
}
