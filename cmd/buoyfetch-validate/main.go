// Command buoyfetch-validate checks a document written by buoyfetch before it
// is published. It verifies the station envelope, the observation and
// spectral records, and that no missing-data sentinel leaked through as a
// number.
//
// Usage:
//
//	go run ./cmd/buoyfetch-validate data/buoy.json
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"time"

	"github.com/couchcryptid/buoy-fetch/internal/domain"
	"github.com/spf13/cobra"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// exitError carries a non-zero exit code out of cobra.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

func main() {
	cmd := &cobra.Command{
		Use:           "buoyfetch-validate <file>",
		Short:         "Check a buoyfetch output document",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if code := run(args[0], cmd.OutOrStdout()); code != 0 {
				return exitError(code)
			}
			return nil
		},
	}
	if err := cmd.Execute(); err != nil {
		if _, ok := err.(exitError); !ok {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(path string, out io.Writer) int {
	fmt.Fprintln(out, "=== Buoy Document Validation ===")
	fmt.Fprintln(out)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "FATAL: read document: %v\n", err)
		return 1
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		fmt.Fprintf(out, "FATAL: decode document: %v\n", err)
		return 1
	}

	doc, err := decodeStrict(data)
	if err != nil {
		fmt.Fprintf(out, "FATAL: decode document: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateEnvelope(doc, keys),
		validateObservation(doc.Buoy),
		validateSpectral(doc.SpectralSummary),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: buoy %s, spectral_summary %s\n",
		presence(doc.Buoy != nil), presence(doc.SpectralSummary != nil))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func decodeStrict(data []byte) (*domain.OutputDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc domain.OutputDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func presence(ok bool) string {
	if ok {
		return "present"
	}
	return "null"
}

// ── Phase 1: Envelope ──

var envelopeKeys = []string{"fetch_time", "buoy_id", "buoy_name", "buoy_lat", "buoy_lon", "buoy", "spectral_summary"}

func validateEnvelope(doc *domain.OutputDocument, keys map[string]json.RawMessage) *phase {
	p := &phase{name: "Phase 1: Envelope (station metadata)"}

	for _, k := range envelopeKeys {
		if _, ok := keys[k]; !ok {
			p.errorf("missing key %q (absent records must be written as null)", k)
		}
	}

	if doc.FetchTime.IsZero() {
		p.errorf("fetch_time is zero")
	} else if _, offset := doc.FetchTime.Zone(); offset != 0 {
		p.errorf("fetch_time %s is not UTC", doc.FetchTime.Format(time.RFC3339))
	}
	if doc.BuoyID == "" {
		p.errorf("buoy_id is empty")
	}
	if doc.BuoyName == "" {
		p.errorf("buoy_name is empty")
	}
	if doc.BuoyLat < -90 || doc.BuoyLat > 90 {
		p.errorf("buoy_lat %g out of range", doc.BuoyLat)
	}
	if doc.BuoyLon < -180 || doc.BuoyLon > 180 {
		p.errorf("buoy_lon %g out of range", doc.BuoyLon)
	}
	return p
}

// ── Phase 2: Observation ──

var observationTime = regexp.MustCompile(`^\d{1,4}-\d{1,2}-\d{1,2} \d{1,2}:\d{1,2} UTC$`)

// Output-unit bounds from the raw sentinels. A converted value at or above
// these could only have come from an unfiltered sentinel.
var (
	maxFeet       = domain.MetersToFeet(domain.SentinelDefault)
	maxFahrenheit = domain.CelsiusToFahrenheit(domain.SentinelDefault)
	maxMph        = domain.MpsToMph(domain.SentinelDefault)
)

type bound struct {
	field string
	value *float64
	min   float64
	max   float64 // exclusive
}

func validateObservation(rec *domain.ObservationRecord) *phase {
	p := &phase{name: "Phase 2: Observation (stdmet record)"}
	if rec == nil {
		return p
	}

	if !observationTime.MatchString(rec.Time) {
		p.errorf("time %q is not \"YYYY-MM-DD hh:mm UTC\"", rec.Time)
	}

	checkBounds(p, []bound{
		{"wave_height", rec.WaveHeight, 0, maxFeet},
		{"dominant_period", rec.DominantPeriod, 0, domain.SentinelDefault},
		{"average_period", rec.AveragePeriod, 0, domain.SentinelDefault},
		{"mean_wave_direction", rec.MeanWaveDirection, 0, 360.5},
		{"water_temp", rec.WaterTemp, -100, maxFahrenheit},
		{"wind_speed", rec.WindSpeed, 0, maxMph},
		{"wind_direction", rec.WindDirection, 0, 360.5},
		{"wind_gust", rec.WindGust, 0, maxMph},
		{"pressure", rec.Pressure, 0, domain.SentinelPressure},
		{"air_temp", rec.AirTemp, -100, maxFahrenheit},
	})
	return p
}

// ── Phase 3: Spectral ──

func validateSpectral(rec *domain.SpectralSummaryRecord) *phase {
	p := &phase{name: "Phase 3: Spectral (summary record)"}
	if rec == nil {
		return p
	}

	checkBounds(p, []bound{
		{"significant_wave_height_m", rec.SignificantWaveHeight, 0, domain.SentinelDefault},
		{"swell_height_m", rec.SwellHeight, 0, domain.SentinelDefault},
		{"swell_period", rec.SwellPeriod, 0, domain.SentinelDefault},
		{"swell_direction", rec.SwellDirection, 0, 360.5},
		{"wind_wave_height_m", rec.WindWaveHeight, 0, domain.SentinelDefault},
		{"wind_wave_period", rec.WindWavePeriod, 0, domain.SentinelDefault},
		{"wind_wave_direction", rec.WindWaveDirection, 0, 360.5},
	})
	return p
}

func checkBounds(p *phase, bounds []bound) {
	for _, b := range bounds {
		if b.value == nil {
			continue
		}
		v := *b.value
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			p.errorf("%s is not finite", b.field)
		case v < b.min || v >= b.max:
			p.errorf("%s %g outside [%g, %g)", b.field, v, b.min, b.max)
		}
	}
}
