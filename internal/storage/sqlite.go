package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite snapshot of the relationship table.
type DB struct {
	db *sql.DB
}

// selectRecordFields contains the standard field list for SELECT queries.
const selectRecordFields = `project_id, project_name, tool_id, tool_name, relationship_type,
	project_devs, smart_contract_devs, total_txns, total_gas_fees`

// SnapshotInfo describes the last rebuild of the snapshot.
type SnapshotInfo struct {
	Source   string    `json:"source"`
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per relationship observation; seq keeps load order
		CREATE TABLE IF NOT EXISTS relationships (
			seq INTEGER PRIMARY KEY,
			project_id TEXT NOT NULL,
			project_name TEXT NOT NULL,
			tool_id TEXT NOT NULL,
			tool_name TEXT NOT NULL,
			relationship_type TEXT NOT NULL,
			project_devs INTEGER NOT NULL CHECK (project_devs >= 0),
			smart_contract_devs INTEGER NOT NULL CHECK (smart_contract_devs >= 0),
			total_txns INTEGER NOT NULL CHECK (total_txns >= 0),
			total_gas_fees REAL NOT NULL CHECK (total_gas_fees >= 0)
		);

		CREATE INDEX IF NOT EXISTS idx_relationships_type ON relationships(relationship_type);

		CREATE TABLE IF NOT EXISTS snapshot_meta (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			source TEXT NOT NULL,
			records INTEGER NOT NULL,
			loaded_at INTEGER NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromRecords clears the snapshot and stores records in order.
func (d *DB) RebuildFromRecords(source string, records []relationship.Record) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM relationships"); err != nil {
		return 0, fmt.Errorf("clearing relationships table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO relationships (
			seq, project_id, project_name, tool_id, tool_name, relationship_type,
			project_devs, smart_contract_devs, total_txns, total_gas_fees
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing relationships insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
		_, err := stmt.Exec(
			i, r.ProjectID, r.ProjectName, r.ToolID, r.ToolName, r.RelationshipType,
			r.ProjectDevs, r.SmartContractDevs, r.TotalTxns, r.TotalGasFees,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting record %d (%s -> %s): %w", i, r.ProjectName, r.ToolName, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO snapshot_meta (id, source, records, loaded_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET source = excluded.source, records = excluded.records, loaded_at = excluded.loaded_at
	`, source, len(records), time.Now().UTC().Unix())
	if err != nil {
		return 0, fmt.Errorf("writing snapshot metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing snapshot: %w", err)
	}
	return len(records), nil
}

// GetAllRecords returns every record in load order.
func (d *DB) GetAllRecords() ([]relationship.Record, error) {
	rows, err := d.db.Query(`SELECT ` + selectRecordFields + ` FROM relationships ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying relationships: %w", err)
	}
	defer rows.Close()

	var records []relationship.Record
	for rows.Next() {
		var r relationship.Record
		err := rows.Scan(
			&r.ProjectID, &r.ProjectName, &r.ToolID, &r.ToolName, &r.RelationshipType,
			&r.ProjectDevs, &r.SmartContractDevs, &r.TotalTxns, &r.TotalGasFees,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning relationship: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// RelationshipTypes returns the distinct relationship types in load order.
func (d *DB) RelationshipTypes() ([]string, error) {
	rows, err := d.db.Query(`
		SELECT relationship_type FROM relationships
		GROUP BY relationship_type
		ORDER BY MIN(seq)
	`)
	if err != nil {
		return nil, fmt.Errorf("querying relationship types: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// Count returns the total number of records.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM relationships").Scan(&count)
	return count, err
}

// Info returns the snapshot metadata, or nil if the snapshot was never built.
func (d *DB) Info() (*SnapshotInfo, error) {
	var info SnapshotInfo
	var loadedAt int64
	err := d.db.QueryRow(`SELECT source, records, loaded_at FROM snapshot_meta WHERE id = 1`).
		Scan(&info.Source, &info.Records, &loadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot metadata: %w", err)
	}
	info.LoadedAt = time.Unix(loadedAt, 0).UTC()
	return &info, nil
}
