package service

import (
	"context"
	"fmt"
	"time"

	"firewatch/internal/logger"
	"firewatch/internal/models"
	"firewatch/internal/store"
)

// Default staleness windows.
const (
	DefaultStaleTimeout   = 8 * time.Second
	DefaultMissingTimeout = 15 * time.Second
)

// MonitorService re-evaluates every room's status from elapsed time alone.
// It only ever degrades a status (NORMAL -> STALE -> ALERT_MISSING); fresh
// data clears staleness through the ingestion path, never here.
type MonitorService struct {
	store        *store.RoomStore
	alerts       AlertDispatcher
	staleAfter   time.Duration
	missingAfter time.Duration
	log          *logger.Logger
}

func NewMonitorService(st *store.RoomStore, alerts AlertDispatcher, log *logger.Logger, cfg Config) *MonitorService {
	s := &MonitorService{
		store:        st,
		alerts:       alerts,
		staleAfter:   cfg.StaleTimeout,
		missingAfter: cfg.MissingTimeout,
		log:          log,
	}
	if s.staleAfter <= 0 {
		s.staleAfter = DefaultStaleTimeout
	}
	if s.missingAfter <= 0 {
		s.missingAfter = DefaultMissingTimeout
	}
	return s
}

// Run ticks at the given interval until ctx is canceled.
func (s *MonitorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.Sweep(now)
		}
	}
}

// Sweep runs one staleness pass. The missing alert fires only for rooms that
// entered ALERT_MISSING during this pass, and each dispatch runs in its own
// goroutine so one room's slow webhook cannot delay the others.
func (s *MonitorService) Sweep(now time.Time) {
	for _, roomID := range s.store.EvaluateStaleness(now, s.staleAfter, s.missingAfter) {
		s.log.Warnw("room stopped reporting", "room", roomID, "timeout", s.missingAfter)
		go s.dispatchMissingAlert(roomID, now)
	}
}

func (s *MonitorService) dispatchMissingAlert(roomID string, now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
	defer cancel()

	err := s.alerts.Dispatch(ctx, models.AlertMessage{
		RoomID:    roomID,
		AlertType: models.AlertMissing,
		Reasons:   []string{},
		Message:   fmt.Sprintf("WARNING! Sensor data from %s not received for > %d sec.", roomID, int(s.missingAfter.Seconds())),
		AlertTime: now.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		s.log.Errorw("missing-data alert dispatch failed", "room", roomID, "err", err)
	}
}
