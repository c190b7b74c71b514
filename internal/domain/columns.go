package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel thresholds. A raw value at or above the threshold means "not measured".
const (
	SentinelDefault   = 99.0
	SentinelDirection = 999.0
	SentinelPressure  = 9999.0
)

// minReportLines covers the header, the units line and one observation.
const minReportLines = 3

// reportLines trims the body and returns its lines, or an error if there are
// not enough of them to hold an observation.
func reportLines(body string) ([]string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyReport
	}
	lines := strings.Split(body, "\n")
	if len(lines) < minReportLines {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewLines, len(lines))
	}
	return lines, nil
}

// columnRow associates header names with the tokens of one data line, in
// declared header order.
type columnRow struct {
	names  []string
	values []string
	index  map[string]int
}

// newColumnRow zips header with data. The first header token loses its
// leading '#'. A repeated header name resolves to its last position.
func newColumnRow(header, data []string) (*columnRow, error) {
	if len(data) < len(header) {
		return nil, fmt.Errorf("%w: %d values for %d columns", ErrShortDataRow, len(data), len(header))
	}

	names := make([]string, len(header))
	copy(names, header)
	if len(names) > 0 {
		names[0] = strings.TrimLeft(names[0], "#")
	}

	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	return &columnRow{
		names:  names,
		values: data[:len(names)],
		index:  index,
	}, nil
}

// get returns the raw token under column name.
func (r *columnRow) get(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.values[i], true
}

// float parses the token under column name, applying the sentinel rule.
func (r *columnRow) float(name string, sentinel float64) *float64 {
	tok, ok := r.get(name)
	if !ok {
		return nil
	}
	return parseMeasurement(tok, sentinel)
}

// parseMeasurement parses tok as a float. Unparseable, non-finite and
// sentinel values return nil.
func parseMeasurement(tok string, sentinel float64) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v >= sentinel {
		return nil
	}
	return &v
}
