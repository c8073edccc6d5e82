package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"firewatch/internal/models"
)

type OccupancySQLite struct {
	db *sql.DB
}

func NewOccupancySQLite(db *sql.DB) *OccupancySQLite { return &OccupancySQLite{db: db} }

var _ OccupancyRepo = (*OccupancySQLite)(nil)

const (
	selectCountsSQL = `SELECT ruangan, peopleCount FROM people_detection`

	selectRoomSQL = `
		SELECT ruangan, peopleCount, lastDetectedTimeStamp, lastUpdateTimeStamp
		FROM people_detection WHERE ruangan = ?
	`

	selectTotalSQL = `SELECT COALESCE(SUM(peopleCount), 0) FROM people_detection WHERE peopleCount > 0`

	selectOccupiedSQL = `
		SELECT ruangan, peopleCount, lastDetectedTimeStamp, lastUpdateTimeStamp
		FROM people_detection WHERE peopleCount > 0 ORDER BY ruangan
	`
)

// Counts returns the raw per-room people counts, -1 for rooms the detector
// has not reported on yet.
func (r *OccupancySQLite) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, selectCountsSQL)
	if err != nil {
		return nil, fmt.Errorf("select people counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			room  string
			count sql.NullInt64
		)
		if err := rows.Scan(&room, &count); err != nil {
			return nil, fmt.Errorf("scan people count: %w", err)
		}
		if count.Valid {
			counts[room] = int(count.Int64)
		} else {
			counts[room] = -1
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// Get fetches one room's occupancy. Returns (nil, nil) if the room is unknown.
func (r *OccupancySQLite) Get(ctx context.Context, roomID string) (*models.RoomOccupancy, error) {
	row := r.db.QueryRowContext(ctx, selectRoomSQL, roomID)

	occ, err := scanOccupancy(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select room %q: %w", roomID, err)
	}
	return occ, nil
}

// Building returns the total people count plus a per-room breakdown of the
// occupied rooms, ordered by room id.
func (r *OccupancySQLite) Building(ctx context.Context) (models.BuildingOccupancy, error) {
	var out models.BuildingOccupancy

	if err := r.db.QueryRowContext(ctx, selectTotalSQL).Scan(&out.TotalPeople); err != nil {
		return models.BuildingOccupancy{}, fmt.Errorf("select total people: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, selectOccupiedSQL)
	if err != nil {
		return models.BuildingOccupancy{}, fmt.Errorf("select occupied rooms: %w", err)
	}
	defer rows.Close()

	out.Details = make([]models.RoomOccupancy, 0, 8)
	for rows.Next() {
		occ, err := scanOccupancy(rows.Scan)
		if err != nil {
			return models.BuildingOccupancy{}, fmt.Errorf("scan occupied room: %w", err)
		}
		out.Details = append(out.Details, *occ)
	}
	if err := rows.Err(); err != nil {
		return models.BuildingOccupancy{}, err
	}
	return out, nil
}

func scanOccupancy(scan func(dest ...any) error) (*models.RoomOccupancy, error) {
	var (
		occ        models.RoomOccupancy
		count      sql.NullInt64
		detected   sql.NullString
		lastUpdate sql.NullString
	)
	if err := scan(&occ.RoomID, &count, &detected, &lastUpdate); err != nil {
		return nil, err
	}
	occ.PeopleCount = -1
	if count.Valid {
		occ.PeopleCount = int(count.Int64)
	}
	occ.LastDetectedAt = detected.String
	occ.LastUpdatedAt = lastUpdate.String
	return &occ, nil
}
