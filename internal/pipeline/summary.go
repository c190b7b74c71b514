package pipeline

import (
	"log/slog"

	"github.com/couchcryptid/buoy-fetch/internal/domain"
)

// summarize logs the headline numbers of a written document, or a warning for
// each report that produced no record.
func (p *Pipeline) summarize(doc *domain.OutputDocument) {
	if b := doc.Buoy; b != nil {
		p.logger.Info("wave conditions",
			"observed", b.Time,
			valueAttr("wave_height_ft", b.WaveHeight),
			valueAttr("dominant_period_s", b.DominantPeriod),
		)
	} else {
		p.logger.Warn("no buoy data parsed", "buoy_id", doc.BuoyID)
	}

	if s := doc.SpectralSummary; s != nil {
		p.logger.Info("swell conditions",
			valueAttr("swell_height_m", s.SwellHeight),
			valueAttr("swell_period_s", s.SwellPeriod),
		)
	} else {
		p.logger.Warn("no spectral data parsed", "buoy_id", doc.BuoyID)
	}
}

// valueAttr renders an optional measurement, spelling out absence.
func valueAttr(key string, v *float64) slog.Attr {
	if v == nil {
		return slog.String(key, "missing")
	}
	return slog.Float64(key, *v)
}
