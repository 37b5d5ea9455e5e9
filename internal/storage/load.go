package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
)

// Format identifies a relationship data file format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSONL  Format = "jsonl"
	FormatSQLite Format = "sqlite"
)

// DetectFormat infers the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unsupported data file %q: expected .csv, .jsonl or .db", path)
	}
}

// ReadRecords reads and validates all records from a CSV, JSONL or SQLite file.
func ReadRecords(path string, opts ReadOptions) ([]relationship.Record, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		return ReadCSVFile(path, opts)
	case FormatJSONL:
		return ReadJSONL(path)
	default:
		// OpenDB would create an empty database for a missing path
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("opening snapshot: %w", err)
		}
		db, err := OpenDB(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.GetAllRecords()
	}
}

// LoadTable reads records from path into a read-only table snapshot.
func LoadTable(path string, opts ReadOptions) (*relationship.Table, error) {
	records, err := ReadRecords(path, opts)
	if err != nil {
		return nil, err
	}
	return relationship.NewTable(records), nil
}
