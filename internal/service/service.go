package service

import (
	"context"
	"time"

	"firewatch/internal/logger"
	"firewatch/internal/models"
	"firewatch/internal/repository"
	"firewatch/internal/store"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Ingest consumes inbound sensor readings and drives room status.
type Ingest interface {
	Ingest(ctx context.Context, p ReadingParams) error
}

// LiveData exposes the merged dashboard view: room statuses, trend arrays,
// people counts, and the global fire flag.
type LiveData interface {
	GetLiveData(ctx context.Context) (models.LiveData, error)
}

// Occupancy exposes read-only people counts maintained by the external
// detector.
type Occupancy interface {
	GetRoom(ctx context.Context, roomID string) (*models.RoomOccupancy, error)
	GetBuilding(ctx context.Context) (models.BuildingOccupancy, error)
}

// Incidents lists the persisted fire incidents.
type Incidents interface {
	List(ctx context.Context) ([]models.Incident, error)
}

// Monitor runs the background staleness sweep.
// Stop via context cancellation in main() for graceful shutdown.
type Monitor interface {
	Run(ctx context.Context, tick time.Duration)
}

// Replicator periodically copies the database files for the downstream
// consumer.
type Replicator interface {
	Run(ctx context.Context, interval time.Duration)
}

// ReadingParams is one inbound sensor sample before validation. The JSON
// shape matches what the sensor fleet posts.
type ReadingParams struct {
	RoomID      string   `json:"roomId"`
	Temperature *float64 `json:"temperature,omitempty"`
	Smoke       *int     `json:"smokeValue,omitempty"`
}

// Config carries the tuning constants the services run with.
type Config struct {
	TempThresholdC float64
	SmokeThreshold int
	StaleTimeout   time.Duration
	MissingTimeout time.Duration
	WebhookURL     string
	WebhookTimeout time.Duration
	DetectorCmd    []string
	ReplicaDir     string
	ReplicaFiles   []ReplicaFile
	SigningKey     string
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Ingest
	LiveData
	Occupancy
	Incidents
	Monitor
	Replicator
	Authorization
}

// NewService wires the store, repositories, and gateways into concrete
// services. The incident and detector latches live here so every ingestion
// path shares the same once-per-process gates.
func NewService(repos *repository.Repository, st *store.RoomStore, log *logger.Logger, cfg Config) *Service {
	dispatcher := NewWebhookDispatcher(cfg.WebhookURL, cfg.WebhookTimeout, log)
	detector := NewProcessDetector(cfg.DetectorCmd, log)

	return &Service{
		Ingest:        NewIngestService(st, repos.Incidents, dispatcher, detector, log, cfg),
		LiveData:      NewLiveDataService(st, repos.Occupancy, log),
		Occupancy:     NewOccupancyService(repos.Occupancy),
		Incidents:     NewIncidentsService(repos.Incidents),
		Monitor:       NewMonitorService(st, dispatcher, log, cfg),
		Replicator:    NewReplicatorService(cfg.ReplicaDir, cfg.ReplicaFiles, log),
		Authorization: NewAuthService(repos.Auth, cfg.SigningKey),
	}
}
