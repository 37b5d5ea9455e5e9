// Package relationship defines the project/dev-tool relationship records the
// weighting engine consumes.
package relationship

import (
	"fmt"
	"strings"
)

// Metric names a numeric column of a relationship record. Values are the
// column headers of the upstream relationship table.
type Metric string

const (
	MetricProjectDevs       Metric = "Num Project Devs Engaging with Dev Tool"
	MetricSmartContractDevs Metric = "Num Smart Contract Devs Engaging with Dev Tool"
	MetricTotalTxns         Metric = "Project Total Txns"
	MetricTotalGasFees      Metric = "Project Total Gas Fees"
)

// Metrics lists every metric in schema order.
var Metrics = []Metric{
	MetricProjectDevs,
	MetricSmartContractDevs,
	MetricTotalTxns,
	MetricTotalGasFees,
}

type metricInfo struct {
	key   string
	label string
}

var metricInfos = map[Metric]metricInfo{
	MetricProjectDevs:       {key: "project_devs", label: "Project Devs"},
	MetricSmartContractDevs: {key: "smart_contract_devs", label: "Smart Contract Devs"},
	MetricTotalTxns:         {key: "total_txns", label: "Total Transactions"},
	MetricTotalGasFees:      {key: "total_gas_fees", label: "Total Gas Fees"},
}

// Valid reports whether m is part of the schema.
func (m Metric) Valid() bool {
	_, ok := metricInfos[m]
	return ok
}

// Key returns the short snake_case key used in flags, query parameters and config.
func (m Metric) Key() string {
	return metricInfos[m].key
}

// Label returns the display label.
func (m Metric) Label() string {
	return metricInfos[m].label
}

func (m Metric) String() string {
	return string(m)
}

// ParseMetric resolves a column header, short key or label to a Metric.
// Matching on keys and labels is case-insensitive.
func ParseMetric(s string) (Metric, error) {
	s = strings.TrimSpace(s)
	for _, m := range Metrics {
		if s == string(m) {
			return m, nil
		}
	}
	norm := strings.ReplaceAll(strings.ToLower(s), "-", "_")
	for _, m := range Metrics {
		if norm == m.Key() || strings.EqualFold(s, m.Label()) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q (valid: %s)", s, strings.Join(MetricKeys(), ", "))
}

// MetricKeys returns the short keys of all metrics in schema order.
func MetricKeys() []string {
	keys := make([]string, len(Metrics))
	for i, m := range Metrics {
		keys[i] = m.Key()
	}
	return keys
}
