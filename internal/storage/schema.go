// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for routes, samples, and settings.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS routes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		route_id INTEGER NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		timestamp INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (route_id) REFERENCES routes(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL UNIQUE,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_routes_name ON routes(name);
	CREATE INDEX IF NOT EXISTS idx_samples_route ON samples(route_id);
	CREATE INDEX IF NOT EXISTS idx_samples_route_timestamp ON samples(route_id, timestamp);
	CREATE INDEX IF NOT EXISTS idx_settings_key ON settings(key);
	`

	_, err := d.db.Exec(schema)
	return err
}
