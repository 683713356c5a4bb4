// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for ledger entries and check-ins.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		name TEXT NOT NULL,
		kcal REAL NOT NULL,
		minutes INTEGER NOT NULL,
		exercise_key TEXT,
		raw_minutes INTEGER,
		multiplier REAL,
		bonus_note TEXT,
		style TEXT,
		size TEXT,
		count REAL,
		abv REAL,
		brewery TEXT,
		brand TEXT,
		rating INTEGER,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS checkins (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		rest_day INTEGER NOT NULL DEFAULT 0,
		waist_ease INTEGER NOT NULL DEFAULT 0,
		foot_lightness INTEGER NOT NULL DEFAULT 0,
		water_ok INTEGER NOT NULL DEFAULT 0,
		fiber_ok INTEGER NOT NULL DEFAULT 0,
		weight_kg REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_entries_minutes ON entries(minutes);
	CREATE INDEX IF NOT EXISTS idx_checkins_timestamp ON checkins(timestamp DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
