package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"data/dev_tool_relationships.csv", FormatCSV, false},
		{"rel.JSONL", FormatJSONL, false},
		{"rel.ndjson", FormatJSONL, false},
		{".rfw/cache/relationships.db", FormatSQLite, false},
		{"snap.sqlite", FormatSQLite, false},
		{"data.parquet", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLoadTable_AllFormats(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "rel.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	records, err := ReadCSVFile(csvPath, ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}

	jsonlPath := filepath.Join(dir, "rel.jsonl")
	if err := WriteJSONL(jsonlPath, records); err != nil {
		t.Fatal(err)
	}

	dbPath := filepath.Join(dir, "rel.db")
	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.RebuildFromRecords(csvPath, records); err != nil {
		t.Fatal(err)
	}
	db.Close()

	for _, path := range []string{csvPath, jsonlPath, dbPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			table, err := LoadTable(path, ReadOptions{})
			if err != nil {
				t.Fatalf("LoadTable(%s) error = %v", path, err)
			}
			if table.Len() != 3 {
				t.Errorf("Len() = %d, want 3", table.Len())
			}
			if got := strings.Join(table.RelationshipTypes(), ","); got != "Dependency,Both,Engagement" {
				t.Errorf("RelationshipTypes() = %s", got)
			}
		})
	}
}

func TestLoadTable_MissingSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	if _, err := LoadTable(path, ReadOptions{}); err == nil {
		t.Fatal("expected error for missing snapshot")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("loading a missing snapshot must not create it")
	}
}
