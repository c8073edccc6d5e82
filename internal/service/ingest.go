package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"firewatch/internal/logger"
	"firewatch/internal/metrics"
	"firewatch/internal/models"
	"firewatch/internal/repository"
	"firewatch/internal/store"

	"github.com/google/uuid"
)

// ErrMissingRoomID rejects a reading that does not identify its room.
var ErrMissingRoomID = errors.New("invalid data: roomId missing")

// gatewayTimeout bounds the fire-and-forget side effect calls so a slow
// collaborator can never wedge an ingestion goroutine.
const gatewayTimeout = 10 * time.Second

// AlertDispatcher sends one outbound alert, best effort.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, msg models.AlertMessage) error
}

// DetectorTrigger starts the external people-detection workflow.
type DetectorTrigger interface {
	Start(ctx context.Context) error
}

// IngestService applies inbound readings to the room store and fires the
// one-shot side effects behind their latches.
type IngestService struct {
	store     *store.RoomStore
	eval      ThresholdEvaluator
	incidents repository.IncidentRepo
	alerts    AlertDispatcher
	detector  DetectorTrigger
	log       *logger.Logger

	incidentOnce store.Latch
	detectorOnce store.Latch
}

func NewIngestService(st *store.RoomStore, incidents repository.IncidentRepo, alerts AlertDispatcher, detector DetectorTrigger, log *logger.Logger, cfg Config) *IngestService {
	eval := ThresholdEvaluator{TempC: cfg.TempThresholdC, Smoke: cfg.SmokeThreshold}
	if eval.TempC == 0 {
		eval.TempC = DefaultTempThresholdC
	}
	if eval.Smoke == 0 {
		eval.Smoke = DefaultSmokeThreshold
	}
	return &IngestService{
		store:     st,
		eval:      eval,
		incidents: incidents,
		alerts:    alerts,
		detector:  detector,
		log:       log,
	}
}

// Ingest validates and records one reading. The in-memory state transition is
// committed before this returns; alert dispatch, incident persistence, and
// the detector launch are best effort and never fail the ingestion.
func (s *IngestService) Ingest(ctx context.Context, p ReadingParams) error {
	if strings.TrimSpace(p.RoomID) == "" {
		metrics.ReadingObserved(metrics.ReadingRejected)
		return ErrMissingRoomID
	}

	now := time.Now()
	r := models.Reading{
		RoomID:      p.RoomID,
		Timestamp:   now.UTC(),
		Temperature: p.Temperature,
		Smoke:       p.Smoke,
	}

	reasons := s.eval.Evaluate(r)
	res := s.store.RecordReading(r, reasons, now)

	if !res.Triggered {
		metrics.ReadingObserved(metrics.ReadingAccepted)
		return nil
	}
	metrics.ReadingObserved(metrics.ReadingFire)

	if res.FirstFire {
		s.log.Warnw("first fire detected; emergency mode active", "room", r.RoomID)
	}
	s.log.Warnw("fire alert", "room", r.RoomID, "details", res.Details)

	go s.dispatchFireAlert(r, reasons, res.Details)
	s.persistFirstIncident(r)
	s.startDetectorOnce()

	return nil
}

// dispatchFireAlert notifies the webhook. Detached from the request context:
// ingestion has already succeeded and the caller must not wait on this.
func (s *IngestService) dispatchFireAlert(r models.Reading, reasons []string, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
	defer cancel()

	err := s.alerts.Dispatch(ctx, models.AlertMessage{
		RoomID:      r.RoomID,
		AlertType:   models.AlertFire,
		Temperature: r.Temperature,
		Smoke:       r.Smoke,
		Reasons:     reasons,
		Message:     message,
		AlertTime:   r.Timestamp.Format(time.RFC3339Nano),
	})
	if err != nil {
		s.log.Errorw("fire alert dispatch failed", "room", r.RoomID, "err", err)
	}
}

// persistFirstIncident writes the first-observed incident exactly once per
// process run. The latch sets only on a successful write, so a failed insert
// leaves the next fire reading free to retry.
func (s *IngestService) persistFirstIncident(r models.Reading) {
	ran, err := s.incidentOnce.Do(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
		defer cancel()
		return s.incidents.Append(ctx, models.Incident{
			ID:          uuid.NewString(),
			RoomID:      r.RoomID,
			Temperature: r.Temperature,
			Smoke:       r.Smoke,
			AlertTime:   r.Timestamp,
		})
	})
	switch {
	case err != nil:
		s.log.Errorw("failed to persist first incident", "room", r.RoomID, "err", err)
	case ran:
		s.log.Infow("first incident persisted", "room", r.RoomID)
	}
}

// startDetectorOnce launches the external detection process at most once per
// process run.
func (s *IngestService) startDetectorOnce() {
	ran, err := s.detectorOnce.Do(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
		defer cancel()
		return s.detector.Start(ctx)
	})
	switch {
	case err != nil:
		s.log.Errorw("failed to start detector process", "err", err)
	case ran:
		s.log.Infow("detector process launched")
	}
}
