// ABOUTME: Check-in CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for daily check-ins.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/payback/internal/models"
)

const checkinColumns = `id, timestamp, rest_day, waist_ease, foot_lightness, water_ok, fiber_ok, weight_kg, created_at`

// CreateCheckIn stores a new check-in in the database.
func (d *DB) CreateCheckIn(c *models.CheckIn) error {
	query := `
		INSERT INTO checkins (` + checkinColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		c.ID.String(),
		c.Timestamp.UTC().Format(time.RFC3339),
		c.RestDay,
		c.WaistEase,
		c.FootLightness,
		c.WaterOK,
		c.FiberOK,
		c.WeightKg,
		c.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create checkin: %w", err)
	}
	return nil
}

// GetCheckIn retrieves a check-in by ID or ID prefix.
func (d *DB) GetCheckIn(idOrPrefix string) (*models.CheckIn, error) {
	id, err := d.resolveID("checkins", idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`SELECT `+checkinColumns+` FROM checkins WHERE id = ?`, id)
	return scanCheckIn(row)
}

// ListCheckIns retrieves check-ins sorted by timestamp descending.
// A limit of 0 returns everything.
func (d *DB) ListCheckIns(limit int) ([]*models.CheckIn, error) {
	query := `SELECT ` + checkinColumns + ` FROM checkins ORDER BY timestamp DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	defer rows.Close()

	var checkins []*models.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}

// FindCheckInOn returns the check-in whose timestamp falls on day's local
// calendar day, or nil if there is none.
func (d *DB) FindCheckInOn(day time.Time) (*models.CheckIn, error) {
	checkins, err := d.ListCheckIns(0)
	if err != nil {
		return nil, err
	}
	y, m, dd := day.Local().Date()
	for _, c := range checkins {
		cy, cm, cd := c.Timestamp.Local().Date()
		if cy == y && cm == m && cd == dd {
			return c, nil
		}
	}
	return nil, nil
}

// DeleteCheckIn removes a check-in by ID or prefix.
func (d *DB) DeleteCheckIn(idOrPrefix string) error {
	id, err := d.resolveID("checkins", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete checkin: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM checkins WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete checkin: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete checkin: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", idOrPrefix)
	}
	return nil
}

// scanCheckIn scans a single row into a CheckIn struct.
func scanCheckIn(row rowScanner) (*models.CheckIn, error) {
	var c models.CheckIn
	var idStr, timestamp, createdAt string
	var weight sql.NullFloat64

	err := row.Scan(&idStr, &timestamp, &c.RestDay, &c.WaistEase,
		&c.FootLightness, &c.WaterOK, &c.FiberOK, &weight, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan checkin: %w", err)
	}

	c.ID, _ = uuid.Parse(idStr)
	ts, _ := time.Parse(time.RFC3339, timestamp)
	c.Timestamp = ts.Local()
	created, _ := time.Parse(time.RFC3339, createdAt)
	c.CreatedAt = created.Local()
	if weight.Valid {
		c.WeightKg = &weight.Float64
	}

	return &c, nil
}
