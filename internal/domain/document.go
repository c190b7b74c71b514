package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NewDocument starts a document for station stamped with the current UTC time.
// Records are attached by the caller once the reports are parsed.
func NewDocument(station Station) *OutputDocument {
	return &OutputDocument{
		FetchTime: clock.Now().UTC(),
		BuoyID:    station.ID,
		BuoyName:  station.Name,
		BuoyLat:   station.Lat,
		BuoyLon:   station.Lon,
	}
}

// SerializeDocument renders doc as two-space indented JSON with a trailing
// newline. Absent records and values are written as null.
func SerializeDocument(doc *OutputDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return buf.Bytes(), nil
}
