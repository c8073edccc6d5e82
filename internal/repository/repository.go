package repository

import (
	"context"
	"database/sql"

	"firewatch/internal/models"
	"firewatch/internal/repository/db"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// OccupancyRepo reads the people counts maintained by the external detector.
// This service never writes them.
type OccupancyRepo interface {
	Counts(ctx context.Context) (map[string]int, error)
	Get(ctx context.Context, roomID string) (*models.RoomOccupancy, error)
	Building(ctx context.Context) (models.BuildingOccupancy, error)
}

// IncidentRepo is the append-only record of fire incidents.
type IncidentRepo interface {
	Append(ctx context.Context, inc models.Incident) error
	List(ctx context.Context) ([]models.Incident, error)
}

type Repository struct {
	Occupancy OccupancyRepo
	Incidents IncidentRepo
	Auth      Authorization
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Occupancy: NewOccupancySQLite(sqlDB),
		Incidents: NewIncidentSQLite(sqlDB),
		Auth:      NewUserRepository(sqlDB),
	}
}

// InitDB opens the SQLite database, ensures the schema, and seeds the room
// roster into the occupancy table.
func InitDB(path string, roster []string) (*sql.DB, error) {
	return db.InitDB(path, roster)
}
