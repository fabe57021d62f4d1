package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection together with the connection string,
// which the change listener needs to open its own link.
type DB struct {
	*sql.DB
	connStr string
}

// NewDB creates a new database connection and runs the schema migration.
// connectionString should be in the format:
// "host=localhost port=5432 user=postgres password=postgres dbname=nebula sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &DB{DB: db, connStr: connectionString}
	if err := d.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
	id              UUID PRIMARY KEY,
	project         TEXT NOT NULL,
	owner_id        TEXT NOT NULL,
	collection      TEXT NOT NULL,
	description     TEXT NOT NULL,
	amount          BIGINT NOT NULL DEFAULT 0,
	category        TEXT NOT NULL DEFAULT '',
	inv_type        TEXT NOT NULL DEFAULT '',
	target_amount   BIGINT NOT NULL DEFAULT 0,
	current_amount  BIGINT NOT NULL DEFAULT 0,
	monthly_payment BIGINT NOT NULL DEFAULT 0,
	paid_amount     BIGINT NOT NULL DEFAULT 0,
	record_date     TIMESTAMPTZ,
	ord             INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_records_scope ON records (project, owner_id, collection);
CREATE INDEX IF NOT EXISTS idx_records_date ON records (record_date);

CREATE TABLE IF NOT EXISTS settings (
	project  TEXT NOT NULL,
	owner_id TEXT NOT NULL,
	doc_key  TEXT NOT NULL DEFAULT 'main',
	doc      JSONB NOT NULL,
	PRIMARY KEY (project, owner_id, doc_key)
);

CREATE OR REPLACE FUNCTION notify_records_changed() RETURNS trigger AS $$
BEGIN
	IF TG_OP = 'DELETE' THEN
		PERFORM pg_notify('records_changed', OLD.project || '/' || OLD.owner_id || '/' || OLD.collection);
		RETURN OLD;
	END IF;
	PERFORM pg_notify('records_changed', NEW.project || '/' || NEW.owner_id || '/' || NEW.collection);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS records_changed ON records;
CREATE TRIGGER records_changed
	AFTER INSERT OR UPDATE OR DELETE ON records
	FOR EACH ROW EXECUTE FUNCTION notify_records_changed();
`

func (db *DB) migrate() error {
	_, err := db.Exec(schemaSQL)
	return err
}
