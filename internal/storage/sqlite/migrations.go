package sqlite

import "database/sql"

// schema sets up the key/value table. It runs on startup to ensure the table exists.
// Each row holds one whole collection encoded as JSON.
const schema = `
CREATE TABLE IF NOT EXISTS collections (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
