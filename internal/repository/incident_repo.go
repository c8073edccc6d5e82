package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"firewatch/internal/models"

	"github.com/google/uuid"
)

type IncidentSQLite struct {
	db *sql.DB
}

func NewIncidentSQLite(db *sql.DB) *IncidentSQLite { return &IncidentSQLite{db: db} }

var _ IncidentRepo = (*IncidentSQLite)(nil)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Append inserts an incident row. If ID or AlertTime are empty, they're set.
func (r *IncidentSQLite) Append(ctx context.Context, inc models.Incident) error {
	if inc.ID == "" {
		inc.ID = uuid.NewString()
	}
	if inc.AlertTime.IsZero() {
		inc.AlertTime = time.Now().UTC()
	} else {
		inc.AlertTime = inc.AlertTime.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO initial_incident (id, roomId, temperature, smokeValue, alertTime)
		VALUES (?, ?, ?, ?, ?)
	`,
		inc.ID,
		inc.RoomID,
		inc.Temperature,
		inc.Smoke,
		inc.AlertTime.Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert incident for room %q: %w", inc.RoomID, err)
	}
	return nil
}

// List returns all persisted incidents, oldest first.
func (r *IncidentSQLite) List(ctx context.Context) ([]models.Incident, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, roomId, temperature, smokeValue, alertTime
		FROM initial_incident ORDER BY alertTime ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select incidents: %w", err)
	}
	defer rows.Close()

	out := make([]models.Incident, 0, 4)
	for rows.Next() {
		var (
			inc   models.Incident
			temp  sql.NullFloat64
			smoke sql.NullInt64
		)
		if err := rows.Scan(&inc.ID, &inc.RoomID, &temp, &smoke, &inc.AlertTime); err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		if temp.Valid {
			v := temp.Float64
			inc.Temperature = &v
		}
		if smoke.Valid {
			v := int(smoke.Int64)
			inc.Smoke = &v
		}
		inc.AlertTime = inc.AlertTime.UTC()
		out = append(out, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
