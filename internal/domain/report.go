package domain

import (
	"errors"
	"time"
)

// Malformed report causes. Parsers wrap these so callers can match them with errors.Is.
var (
	ErrEmptyReport  = errors.New("empty report")
	ErrTooFewLines  = errors.New("report has fewer than 3 lines")
	ErrShortDataRow = errors.New("data row has too few columns")
)

// ReportKind identifies one of the NDBC realtime files.
type ReportKind string

const (
	ReportStandard ReportKind = "stdmet"
	ReportSpectral ReportKind = "spectral"
)

// Extension returns the realtime2 file suffix for the report kind.
func (k ReportKind) Extension() string {
	if k == ReportSpectral {
		return ".spec"
	}
	return ".txt"
}

// RawReport is the unparsed body of one fetched report.
type RawReport struct {
	Kind      ReportKind
	URL       string
	Body      string
	FetchedAt time.Time
}

// Station is the static metadata for the buoy being reported.
type Station struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
}

// ObservationRecord holds the newest row of the standard meteorological report
// converted to display units. Nil fields were missing or sentinel-filtered.
type ObservationRecord struct {
	Time              string   `json:"time"`
	WaveHeight        *float64 `json:"wave_height"`         // ft
	DominantPeriod    *float64 `json:"dominant_period"`     // s
	AveragePeriod     *float64 `json:"average_period"`      // s
	MeanWaveDirection *float64 `json:"mean_wave_direction"` // degT
	WaterTemp         *float64 `json:"water_temp"`          // degF
	WindSpeed         *float64 `json:"wind_speed"`          // mph
	WindDirection     *float64 `json:"wind_direction"`      // degT
	WindGust          *float64 `json:"wind_gust"`           // mph
	Pressure          *float64 `json:"pressure"`            // hPa
	AirTemp           *float64 `json:"air_temp"`            // degF
}

// AbsentFields lists the JSON names of fields that carry no value.
func (r *ObservationRecord) AbsentFields() []string {
	return absent([]namedValue{
		{"wave_height", r.WaveHeight},
		{"dominant_period", r.DominantPeriod},
		{"average_period", r.AveragePeriod},
		{"mean_wave_direction", r.MeanWaveDirection},
		{"water_temp", r.WaterTemp},
		{"wind_speed", r.WindSpeed},
		{"wind_direction", r.WindDirection},
		{"wind_gust", r.WindGust},
		{"pressure", r.Pressure},
		{"air_temp", r.AirTemp},
	})
}

// SpectralSummaryRecord holds the newest row of the spectral wave summary.
// Heights are metres, periods seconds, directions degrees true.
type SpectralSummaryRecord struct {
	SignificantWaveHeight *float64 `json:"significant_wave_height_m"`
	SwellHeight           *float64 `json:"swell_height_m"`
	SwellPeriod           *float64 `json:"swell_period"`
	SwellDirection        *float64 `json:"swell_direction"`
	WindWaveHeight        *float64 `json:"wind_wave_height_m"`
	WindWavePeriod        *float64 `json:"wind_wave_period"`
	WindWaveDirection     *float64 `json:"wind_wave_direction"`
}

// AbsentFields lists the JSON names of fields that carry no value.
func (r *SpectralSummaryRecord) AbsentFields() []string {
	return absent([]namedValue{
		{"significant_wave_height_m", r.SignificantWaveHeight},
		{"swell_height_m", r.SwellHeight},
		{"swell_period", r.SwellPeriod},
		{"swell_direction", r.SwellDirection},
		{"wind_wave_height_m", r.WindWaveHeight},
		{"wind_wave_period", r.WindWavePeriod},
		{"wind_wave_direction", r.WindWaveDirection},
	})
}

// OutputDocument is the fallback document written once per run.
type OutputDocument struct {
	FetchTime       time.Time              `json:"fetch_time"`
	BuoyID          string                 `json:"buoy_id"`
	BuoyName        string                 `json:"buoy_name"`
	BuoyLat         float64                `json:"buoy_lat"`
	BuoyLon         float64                `json:"buoy_lon"`
	Buoy            *ObservationRecord     `json:"buoy"`
	SpectralSummary *SpectralSummaryRecord `json:"spectral_summary"`
}

type namedValue struct {
	name  string
	value *float64
}

func absent(fields []namedValue) []string {
	var out []string
	for _, f := range fields {
		if f.value == nil {
			out = append(out, f.name)
		}
	}
	return out
}
