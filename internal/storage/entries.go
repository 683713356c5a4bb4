// ABOUTME: Ledger entry CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for entries.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/payback/internal/models"
)

const entryColumns = `id, timestamp, name, kcal, minutes, exercise_key, raw_minutes,
		multiplier, bonus_note, style, size, count, abv, brewery, brand, rating, notes, created_at`

// CreateEntry stores a new ledger entry in the database. Timestamps are
// normalized to UTC so their text form sorts and ranges chronologically
// regardless of the offset the entry was logged under.
func (d *DB) CreateEntry(e *models.LedgerEntry) error {
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		e.ID.String(),
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Name,
		e.Kcal,
		e.Minutes,
		nullIfEmpty(e.ExerciseKey),
		e.RawMinutes,
		e.Multiplier,
		nullIfEmpty(e.BonusNote),
		nullIfEmpty(e.Style),
		nullIfEmpty(e.Size),
		e.Count,
		e.ABV,
		nullIfEmpty(e.Brewery),
		nullIfEmpty(e.Brand),
		e.Rating,
		e.Notes,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// GetEntry retrieves an entry by ID or ID prefix.
func (d *DB) GetEntry(idOrPrefix string) (*models.LedgerEntry, error) {
	id, err := d.resolveID("entries", idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	return scanEntry(row)
}

// ListEntries retrieves entries sorted by timestamp descending (most
// recent first). A limit of 0 returns everything.
func (d *DB) ListEntries(limit int) ([]*models.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries ORDER BY timestamp DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListEntriesBetween retrieves entries with start <= timestamp <= end,
// oldest first. Bounds are converted to UTC to match the stored form.
func (d *DB) ListEntriesBetween(start, end time.Time) ([]*models.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE timestamp >= ? AND timestamp <= ?
		ORDER BY timestamp ASC
	`
	rows, err := d.db.Query(query, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("list entries between: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// UpdateEntry rewrites every stored field of an existing entry in place.
// This is the user-edit path: unlike UpdateEntryDerived, a missing id is
// an error. The id and created_at columns never change.
func (d *DB) UpdateEntry(e *models.LedgerEntry) error {
	query := `
		UPDATE entries
		SET timestamp = ?, name = ?, kcal = ?, minutes = ?, exercise_key = ?,
			raw_minutes = ?, multiplier = ?, bonus_note = ?, style = ?, size = ?,
			count = ?, abv = ?, brewery = ?, brand = ?, rating = ?, notes = ?
		WHERE id = ?
	`
	result, err := d.db.Exec(query,
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Name,
		e.Kcal,
		e.Minutes,
		nullIfEmpty(e.ExerciseKey),
		e.RawMinutes,
		e.Multiplier,
		nullIfEmpty(e.BonusNote),
		nullIfEmpty(e.Style),
		nullIfEmpty(e.Size),
		e.Count,
		e.ABV,
		nullIfEmpty(e.Brewery),
		nullIfEmpty(e.Brand),
		e.Rating,
		e.Notes,
		e.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("not found: %s", e.ID)
	}
	return nil
}

// UpdateEntryDerived rewrites the derived fields of a credit entry after
// reconciliation. Identity, raw minutes, exercise key and timestamp are
// never touched. A missing id is a no-op, not an error.
func (d *DB) UpdateEntryDerived(id uuid.UUID, minutes int, kcal, multiplier float64, bonusNote string) error {
	query := `
		UPDATE entries
		SET minutes = ?, kcal = ?, multiplier = ?, bonus_note = ?
		WHERE id = ?
	`
	_, err := d.db.Exec(query, minutes, kcal, multiplier, nullIfEmpty(bonusNote), id.String())
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

// DeleteEntry removes an entry by ID or prefix and returns the deleted
// entry so the caller can reconcile its day.
func (d *DB) DeleteEntry(idOrPrefix string) (*models.LedgerEntry, error) {
	entry, err := d.GetEntry(idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("delete entry: %w", err)
	}

	if _, err := d.db.Exec("DELETE FROM entries WHERE id = ?", entry.ID.String()); err != nil {
		return nil, fmt.Errorf("delete entry: %w", err)
	}
	return entry, nil
}

// resolveID finds the full ID from a prefix in the given table.
func (d *DB) resolveID(table, idOrPrefix string) (string, error) {
	// If it looks like a full UUID, use it directly
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	query := fmt.Sprintf(`SELECT id FROM %s WHERE id LIKE ? || '%%'`, table)
	rows, err := d.db.Query(query, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan ID: %w", err)
		}
		matches = append(matches, id)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("not found: %s", idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}

	return matches[0], nil
}

// nullIfEmpty maps the empty string to NULL so optional columns stay clean.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEntry scans a single row into a LedgerEntry struct.
func scanEntry(row rowScanner) (*models.LedgerEntry, error) {
	var e models.LedgerEntry
	var idStr, timestamp, createdAt string
	var exerciseKey, bonusNote, style, size, brewery, brand, notes sql.NullString
	var rawMinutes, rating sql.NullInt64
	var multiplier, count, abv sql.NullFloat64

	err := row.Scan(&idStr, &timestamp, &e.Name, &e.Kcal, &e.Minutes,
		&exerciseKey, &rawMinutes, &multiplier, &bonusNote,
		&style, &size, &count, &abv, &brewery, &brand, &rating, &notes, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	// Stored in UTC; hand back local time for calendar-day logic and display.
	ts, _ := time.Parse(time.RFC3339, timestamp)
	e.Timestamp = ts.Local()
	created, _ := time.Parse(time.RFC3339, createdAt)
	e.CreatedAt = created.Local()
	e.ExerciseKey = exerciseKey.String
	e.RawMinutes = int(rawMinutes.Int64)
	e.Multiplier = multiplier.Float64
	e.BonusNote = bonusNote.String
	e.Style = style.String
	e.Size = size.String
	e.Count = count.Float64
	e.ABV = abv.Float64
	e.Brewery = brewery.String
	e.Brand = brand.String
	e.Rating = int(rating.Int64)
	if notes.Valid {
		e.Notes = &notes.String
	}

	return &e, nil
}

// scanEntries scans multiple rows into a slice of LedgerEntries.
func scanEntries(rows *sql.Rows) ([]*models.LedgerEntry, error) {
	var entries []*models.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
