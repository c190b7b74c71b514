package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/buoy-fetch/internal/domain"
	"github.com/couchcryptid/buoy-fetch/internal/observability"
)

// Fetcher retrieves the raw text of one report.
type Fetcher interface {
	Fetch(ctx context.Context, kind domain.ReportKind, url string) (domain.RawReport, error)
}

// Loader delivers a finished document to a destination.
type Loader interface {
	Name() string
	Load(ctx context.Context, doc *domain.OutputDocument) error
}

// Job names the station to report on and where its two reports live.
type Job struct {
	Station     domain.Station
	StandardURL string
	SpectralURL string
}

// Pipeline runs one fetch-parse-write cycle for a station.
type Pipeline struct {
	fetcher    Fetcher
	layout     domain.SpectralLayout
	writer     Loader
	publishers []Loader
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Pipeline. writer is the primary destination and its failure
// fails the run; publishers are best-effort secondary destinations.
func New(f Fetcher, layout domain.SpectralLayout, writer Loader, logger *slog.Logger, metrics *observability.Metrics, publishers ...Loader) *Pipeline {
	return &Pipeline{
		fetcher:    f,
		layout:     layout,
		writer:     writer,
		publishers: publishers,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run fetches and parses both reports, then writes the combined document.
// A failed fetch or malformed report leaves the matching record null and the
// run continues. Only a failed write, or cancellation before the write,
// returns an error.
func (p *Pipeline) Run(ctx context.Context, job Job) (*domain.OutputDocument, error) {
	start := time.Now()
	defer func() { p.metrics.RunDuration.Set(time.Since(start).Seconds()) }()

	p.logger.Info("fetching buoy data", "buoy_id", job.Station.ID, "spectral_layout", p.layout.Version)

	doc := domain.NewDocument(job.Station)
	doc.Buoy = p.standard(ctx, job.StandardURL)
	doc.SpectralSummary = p.spectral(ctx, job.SpectralURL)

	// An interrupted run must not replace a good document with an empty one.
	if err := ctx.Err(); err != nil {
		return doc, fmt.Errorf("run cancelled before write: %w", err)
	}

	if err := p.writer.Load(ctx, doc); err != nil {
		p.metrics.DocumentWrites.WithLabelValues("error").Inc()
		return doc, fmt.Errorf("write document: %w", err)
	}
	p.metrics.DocumentWrites.WithLabelValues("success").Inc()
	p.metrics.LastSuccessTime.Set(float64(time.Now().Unix()))

	p.publish(ctx, doc)
	p.summarize(doc)
	return doc, nil
}

func (p *Pipeline) standard(ctx context.Context, url string) *domain.ObservationRecord {
	raw, ok := p.extract(ctx, domain.ReportStandard, url)
	if !ok {
		return nil
	}
	rec, err := domain.ParseStandardReport(raw)
	if err != nil {
		p.malformed(domain.ReportStandard, url, err)
		return nil
	}
	p.parsed(domain.ReportStandard, rec.AbsentFields())
	return rec
}

func (p *Pipeline) spectral(ctx context.Context, url string) *domain.SpectralSummaryRecord {
	raw, ok := p.extract(ctx, domain.ReportSpectral, url)
	if !ok {
		return nil
	}
	rec, err := domain.ParseSpectralSummary(raw, p.layout)
	if err != nil {
		p.malformed(domain.ReportSpectral, url, err)
		return nil
	}
	p.parsed(domain.ReportSpectral, rec.AbsentFields())
	return rec
}

// extract fetches one report. A failure is logged and reported as not ok.
func (p *Pipeline) extract(ctx context.Context, kind domain.ReportKind, url string) (domain.RawReport, bool) {
	p.logger.Info("fetching report", "report", kind, "url", url)
	raw, err := p.fetcher.Fetch(ctx, kind, url)
	if err != nil {
		p.logger.Warn("fetch failed, record will be null", "report", kind, "url", url, "error", err)
		p.metrics.ParseResults.WithLabelValues(string(kind), "absent").Inc()
		return domain.RawReport{}, false
	}
	return raw, true
}

func (p *Pipeline) malformed(kind domain.ReportKind, url string, err error) {
	p.logger.Warn("malformed report, record will be null", "report", kind, "url", url, "error", err)
	p.metrics.ParseResults.WithLabelValues(string(kind), "absent").Inc()
}

func (p *Pipeline) parsed(kind domain.ReportKind, absent []string) {
	p.metrics.ParseResults.WithLabelValues(string(kind), "present").Inc()
	for _, field := range absent {
		p.metrics.AbsentFields.WithLabelValues(string(kind), field).Inc()
	}
	if len(absent) > 0 {
		p.logger.Debug("fields missing from report", "report", kind, "fields", absent)
	}
}

// publish hands the document to every secondary destination. Failures are
// logged and counted; the document on disk is already authoritative.
func (p *Pipeline) publish(ctx context.Context, doc *domain.OutputDocument) {
	for _, l := range p.publishers {
		if err := l.Load(ctx, doc); err != nil {
			p.logger.Warn("publish failed", "sink", l.Name(), "error", err)
			p.metrics.PublishResults.WithLabelValues(l.Name(), "error").Inc()
			continue
		}
		p.metrics.PublishResults.WithLabelValues(l.Name(), "success").Inc()
	}
}
