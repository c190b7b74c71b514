// Command genfixtures snapshots the current NDBC reports for a station into
// test fixtures. Each report is truncated to its header, units line and the
// newest few rows, then parsed with the same domain code the service uses so
// the expected values for test assertions can be read off the output.
//
// Usage:
//
//	go run ./cmd/genfixtures \
//	  -station 44097 \
//	  -out-dir internal/integration/testdata
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/buoy-fetch/internal/adapter/ndbc"
	"github.com/couchcryptid/buoy-fetch/internal/domain"
	"github.com/couchcryptid/buoy-fetch/internal/observability"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	station := flag.String("station", "44097", "NDBC station ID")
	baseURL := flag.String("base-url", "https://www.ndbc.noaa.gov/data/realtime2/", "realtime2 directory URL")
	outDir := flag.String("out-dir", "", "directory to write <station>.txt and <station>.spec into")
	rows := flag.Int("rows", 3, "data rows to keep per report")
	layoutName := flag.String("layout", domain.DefaultSpectralLayout, "spectral column layout used for the printed values")
	flag.Parse()

	if *outDir == "" || *rows < 1 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -out-dir, -rows >= 1")
	}

	layout, err := domain.LookupSpectralLayout(*layoutName)
	if err != nil {
		return err
	}

	// Fixed clock so the printed document is stable between snapshots.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.April, 26, 15, 30, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := ndbc.NewClient(30*time.Second, observability.NewMetrics(), slog.Default())
	doc := domain.NewDocument(domain.Station{ID: *station})

	for _, kind := range []domain.ReportKind{domain.ReportStandard, domain.ReportSpectral} {
		raw, err := client.Fetch(ctx, kind, ndbc.ReportURL(*baseURL, *station, kind))
		if err != nil {
			return fmt.Errorf("fetching %s: %w", kind, err)
		}
		raw.Body = truncate(raw.Body, *rows)

		path := filepath.Join(*outDir, *station+kind.Extension())
		if err := writeFixture(path, raw.Body); err != nil {
			return fmt.Errorf("writing %s fixture: %w", kind, err)
		}
		log.Printf("wrote %s fixture: %s", kind, path)

		switch kind {
		case domain.ReportStandard:
			doc.Buoy, err = domain.ParseStandardReport(raw)
		case domain.ReportSpectral:
			doc.SpectralSummary, err = domain.ParseSpectralSummary(raw, layout)
		}
		if err != nil {
			return fmt.Errorf("parsing %s fixture: %w", kind, err)
		}
	}

	data, err := domain.SerializeDocument(doc)
	if err != nil {
		return err
	}
	fmt.Printf("\n=== Parsed values for updating test assertions (layout %s) ===\n", layout.Version)
	fmt.Print(string(data))
	return nil
}

// truncate keeps the two header lines and the first n data rows.
func truncate(body string, n int) string {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if keep := 2 + n; len(lines) > keep {
		lines = lines[:keep]
	}
	return strings.Join(lines, "\n") + "\n"
}

func writeFixture(path, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(body), 0o600)
}
