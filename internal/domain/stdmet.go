package domain

import (
	"fmt"
	"strings"
)

// ParseStandardReport extracts the newest observation from a standard
// meteorological (.txt) report. A malformed report returns a nil record and an
// error wrapping ErrEmptyReport, ErrTooFewLines or ErrShortDataRow. Individual
// fields that are missing or unparseable are nil in the returned record.
func ParseStandardReport(raw RawReport) (*ObservationRecord, error) {
	lines, err := reportLines(raw.Body)
	if err != nil {
		return nil, fmt.Errorf("parse standard report: %w", err)
	}

	row, err := newColumnRow(strings.Fields(lines[0]), strings.Fields(lines[2]))
	if err != nil {
		return nil, fmt.Errorf("parse standard report: %w", err)
	}

	return &ObservationRecord{
		Time:              observationTime(row),
		WaveHeight:        convert(row.float("WVHT", SentinelDefault), MetersToFeet, 2),
		DominantPeriod:    row.float("DPD", SentinelDefault),
		AveragePeriod:     row.float("APD", SentinelDefault),
		MeanWaveDirection: row.float("MWD", SentinelDirection),
		WaterTemp:         convert(row.float("WTMP", SentinelDefault), CelsiusToFahrenheit, 1),
		WindSpeed:         convert(row.float("WSPD", SentinelDefault), MpsToMph, 1),
		WindDirection:     row.float("WDIR", SentinelDirection),
		WindGust:          convert(row.float("GST", SentinelDefault), MpsToMph, 1),
		Pressure:          row.float("PRES", SentinelPressure),
		AirTemp:           convert(row.float("ATMP", SentinelDefault), CelsiusToFahrenheit, 1),
	}, nil
}

// observationTime renders the row's date columns as "YY-MM-DD hh:mm UTC",
// keeping the tokens exactly as published. Missing columns render empty.
func observationTime(row *columnRow) string {
	tok := func(name string) string {
		v, _ := row.get(name)
		return v
	}
	return fmt.Sprintf("%s-%s-%s %s:%s UTC", tok("YY"), tok("MM"), tok("DD"), tok("hh"), tok("mm"))
}
