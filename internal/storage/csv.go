package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ccerv1/rf-weights-testing/internal/relationship"
)

// Column headers of the relationship table.
const (
	ColumnProjectID        = "Project ID"
	ColumnProjectName      = "Project Name"
	ColumnToolID           = "Dev Tool ID"
	ColumnToolName         = "Dev Tool Name"
	ColumnRelationshipType = "Relationship Type"
)

// RequiredColumns lists every header a relationship CSV must carry.
var RequiredColumns = []string{
	ColumnProjectID,
	ColumnProjectName,
	ColumnToolID,
	ColumnToolName,
	ColumnRelationshipType,
	string(relationship.MetricProjectDevs),
	string(relationship.MetricSmartContractDevs),
	string(relationship.MetricTotalTxns),
	string(relationship.MetricTotalGasFees),
}

// Load errors.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformedRow  = errors.New("malformed row")
)

// ReadOptions configures record loading.
type ReadOptions struct {
	// FillMissing reads empty metric cells as 0 instead of rejecting the row.
	// Upstream left joins leave metrics empty for projects without onchain activity.
	FillMissing bool
}

// ReadCSVFile reads relationship records from a CSV file.
func ReadCSVFile(path string, opts ReadOptions) ([]relationship.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, opts)
}

// ReadCSV reads relationship records from CSV with a header row. Every
// required column must be present; extra columns are ignored. Rows with a
// malformed or negative metric are rejected with their line number.
func ReadCSV(r io.Reader, opts ReadOptions) ([]relationship.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file has no header", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var records []relationship.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		line, _ := reader.FieldPos(0)

		if isBlank(row) {
			continue
		}

		rec, err := parseRow(row, cols, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// indexColumns maps each required header to its position in the header row.
func indexColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int, opts ReadOptions) (relationship.Record, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := relationship.Record{
		ProjectID:        field(ColumnProjectID),
		ProjectName:      field(ColumnProjectName),
		ToolID:           field(ColumnToolID),
		ToolName:         field(ColumnToolName),
		RelationshipType: field(ColumnRelationshipType),
	}

	var err error
	if rec.ProjectDevs, err = parseCount(field(string(relationship.MetricProjectDevs)), opts); err != nil {
		return rec, fmt.Errorf("%s: %w", relationship.MetricProjectDevs, err)
	}
	if rec.SmartContractDevs, err = parseCount(field(string(relationship.MetricSmartContractDevs)), opts); err != nil {
		return rec, fmt.Errorf("%s: %w", relationship.MetricSmartContractDevs, err)
	}
	if rec.TotalTxns, err = parseCount(field(string(relationship.MetricTotalTxns)), opts); err != nil {
		return rec, fmt.Errorf("%s: %w", relationship.MetricTotalTxns, err)
	}
	if rec.TotalGasFees, err = parseAmount(field(string(relationship.MetricTotalGasFees)), opts); err != nil {
		return rec, fmt.Errorf("%s: %w", relationship.MetricTotalGasFees, err)
	}

	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

// parseCount parses a non-negative integer. Integral floats such as "12.0"
// are accepted since dataframe exports write nullable integer columns that way.
func parseCount(s string, opts ReadOptions) (int64, error) {
	if s == "" {
		if opts.FillMissing {
			return 0, nil
		}
		return 0, fmt.Errorf("empty value")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
	if err != nil || f != math.Trunc(f) || f >= float64(math.MaxInt64) || f < float64(math.MinInt64) {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int64(f), nil
}

func parseAmount(s string, opts ReadOptions) (float64, error) {
	if s == "" {
		if opts.FillMissing {
			return 0, nil
		}
		return 0, fmt.Errorf("empty value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

func isBlank(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
