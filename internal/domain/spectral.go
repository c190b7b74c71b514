package domain

import (
	"fmt"
	"sort"
	"strings"
)

// minSpectralColumns is the token count of a complete .spec observation line.
const minSpectralColumns = 15

// ColumnEncoding describes how a spectral column is written.
type ColumnEncoding int

const (
	// EncodingNumeric is a plain decimal number.
	EncodingNumeric ColumnEncoding = iota
	// EncodingCompass is a 16-point compass abbreviation such as "SSE".
	EncodingCompass
)

// SpectralColumn locates one field on the spectral data line.
type SpectralColumn struct {
	Index    int
	Sentinel float64
	Encoding ColumnEncoding
}

// SpectralLayout maps each SpectralSummaryRecord field to a column of the
// .spec data line. Layouts are versioned because NDBC has reordered and
// re-encoded columns over time.
type SpectralLayout struct {
	Version               string
	SignificantWaveHeight SpectralColumn
	SwellHeight           SpectralColumn
	SwellPeriod           SpectralColumn
	SwellDirection        SpectralColumn
	WindWaveHeight        SpectralColumn
	WindWavePeriod        SpectralColumn
	WindWaveDirection     SpectralColumn
}

// DefaultSpectralLayout is the layout the fallback document has always been built with.
const DefaultSpectralLayout = "v1"

// spectralLayouts is the registry of known layouts, keyed by version.
var spectralLayouts = map[string]SpectralLayout{
	// v1 reads columns 5..11 in record field order, all numeric.
	"v1": {
		Version:               "v1",
		SignificantWaveHeight: SpectralColumn{Index: 5, Sentinel: SentinelDefault},
		SwellHeight:           SpectralColumn{Index: 6, Sentinel: SentinelDefault},
		SwellPeriod:           SpectralColumn{Index: 7, Sentinel: SentinelDefault},
		SwellDirection:        SpectralColumn{Index: 8, Sentinel: SentinelDirection},
		WindWaveHeight:        SpectralColumn{Index: 9, Sentinel: SentinelDefault},
		WindWavePeriod:        SpectralColumn{Index: 10, Sentinel: SentinelDefault},
		WindWaveDirection:     SpectralColumn{Index: 11, Sentinel: SentinelDirection},
	},
	// realtime2 follows the published header:
	// YY MM DD hh mm WVHT SwH SwP WWH WWP SwD WWD STEEPNESS APD MWD
	"realtime2": {
		Version:               "realtime2",
		SignificantWaveHeight: SpectralColumn{Index: 5, Sentinel: SentinelDefault},
		SwellHeight:           SpectralColumn{Index: 6, Sentinel: SentinelDefault},
		SwellPeriod:           SpectralColumn{Index: 7, Sentinel: SentinelDefault},
		WindWaveHeight:        SpectralColumn{Index: 8, Sentinel: SentinelDefault},
		WindWavePeriod:        SpectralColumn{Index: 9, Sentinel: SentinelDefault},
		SwellDirection:        SpectralColumn{Index: 10, Sentinel: SentinelDirection, Encoding: EncodingCompass},
		WindWaveDirection:     SpectralColumn{Index: 11, Sentinel: SentinelDirection, Encoding: EncodingCompass},
	},
}

// LookupSpectralLayout returns the layout registered under version.
func LookupSpectralLayout(version string) (SpectralLayout, error) {
	l, ok := spectralLayouts[version]
	if !ok {
		return SpectralLayout{}, fmt.Errorf("unknown spectral layout %q (known: %s)", version, strings.Join(SpectralLayoutVersions(), ", "))
	}
	return l, nil
}

// SpectralLayoutVersions lists the registered layout versions in sorted order.
func SpectralLayoutVersions() []string {
	out := make([]string, 0, len(spectralLayouts))
	for v := range spectralLayouts {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ParseSpectralSummary extracts the newest observation from a spectral
// summary (.spec) report using layout to locate columns. The data line must
// carry at least 15 tokens. No unit conversion is applied.
func ParseSpectralSummary(raw RawReport, layout SpectralLayout) (*SpectralSummaryRecord, error) {
	lines, err := reportLines(raw.Body)
	if err != nil {
		return nil, fmt.Errorf("parse spectral summary: %w", err)
	}

	data := strings.Fields(lines[2])
	if len(data) < minSpectralColumns {
		return nil, fmt.Errorf("parse spectral summary: %w: %d of %d", ErrShortDataRow, len(data), minSpectralColumns)
	}

	return &SpectralSummaryRecord{
		SignificantWaveHeight: layout.SignificantWaveHeight.value(data),
		SwellHeight:           layout.SwellHeight.value(data),
		SwellPeriod:           layout.SwellPeriod.value(data),
		SwellDirection:        layout.SwellDirection.value(data),
		WindWaveHeight:        layout.WindWaveHeight.value(data),
		WindWavePeriod:        layout.WindWavePeriod.value(data),
		WindWaveDirection:     layout.WindWaveDirection.value(data),
	}, nil
}

func (c SpectralColumn) value(data []string) *float64 {
	if c.Index < 0 || c.Index >= len(data) {
		return nil
	}
	tok := data[c.Index]
	if c.Encoding == EncodingCompass {
		return compassDegrees(tok)
	}
	return parseMeasurement(tok, c.Sentinel)
}

// compassPoints lists the 16-point rose clockwise from north, 22.5 degrees apart.
var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// compassDegrees converts a compass abbreviation to degrees true.
func compassDegrees(tok string) *float64 {
	tok = strings.ToUpper(strings.TrimSpace(tok))
	for i, p := range compassPoints {
		if p == tok {
			deg := float64(i) * 22.5
			return &deg
		}
	}
	return nil
}
