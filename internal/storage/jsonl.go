// Package storage loads relationship records from CSV, JSONL and SQLite snapshots.
package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadJSONL reads and validates all relationship records from a JSONL file.
func ReadJSONL(path string) ([]relationship.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening records file: %w", err)
	}
	defer f.Close()

	var records []relationship.Record
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		r, err := decodeRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, lineNum, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, lineNum, err)
		}
		records = append(records, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}

	return records, nil
}

// jsonlRecord mirrors relationship.Record with pointer metrics so that an
// absent metric key can be told apart from an explicit zero.
type jsonlRecord struct {
	ProjectID         string   `json:"project_id"`
	ProjectName       string   `json:"project_name"`
	ToolID            string   `json:"tool_id"`
	ToolName          string   `json:"tool_name"`
	RelationshipType  string   `json:"relationship_type"`
	ProjectDevs       *int64   `json:"project_devs"`
	SmartContractDevs *int64   `json:"smart_contract_devs"`
	TotalTxns         *int64   `json:"total_txns"`
	TotalGasFees      *float64 `json:"total_gas_fees"`
}

// decodeRecord parses one JSONL line. Unknown keys and missing metrics are
// rejected, matching the column checks of the CSV reader.
func decodeRecord(line []byte) (relationship.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.DisallowUnknownFields()

	var raw jsonlRecord
	if err := dec.Decode(&raw); err != nil {
		return relationship.Record{}, err
	}

	missing := func(m relationship.Metric) error {
		return fmt.Errorf("missing metric %q", m.Key())
	}
	switch {
	case raw.ProjectDevs == nil:
		return relationship.Record{}, missing(relationship.MetricProjectDevs)
	case raw.SmartContractDevs == nil:
		return relationship.Record{}, missing(relationship.MetricSmartContractDevs)
	case raw.TotalTxns == nil:
		return relationship.Record{}, missing(relationship.MetricTotalTxns)
	case raw.TotalGasFees == nil:
		return relationship.Record{}, missing(relationship.MetricTotalGasFees)
	}

	return relationship.Record{
		ProjectID:         raw.ProjectID,
		ProjectName:       raw.ProjectName,
		ToolID:            raw.ToolID,
		ToolName:          raw.ToolName,
		RelationshipType:  raw.RelationshipType,
		ProjectDevs:       *raw.ProjectDevs,
		SmartContractDevs: *raw.SmartContractDevs,
		TotalTxns:         *raw.TotalTxns,
		TotalGasFees:      *raw.TotalGasFees,
	}, nil
}

// WriteJSONL writes all records to a JSONL file, replacing existing content.
func WriteJSONL(path string, records []relationship.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating records file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}

		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing records file: %w", err)
	}
	return nil
}
