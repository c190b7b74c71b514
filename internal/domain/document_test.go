package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStation = Station{ID: "44097", Name: "Block Island, RI", Lat: 40.969, Lon: -71.124}

func freezeClock(t *testing.T, at time.Time) *clockwork.FakeClock {
	t.Helper()
	fc := clockwork.NewFakeClockAt(at)
	SetClock(fc)
	t.Cleanup(func() { SetClock(nil) })
	return fc
}

func TestNewDocument(t *testing.T) {
	local := time.FixedZone("EDT", -4*60*60)
	freezeClock(t, time.Date(2024, time.April, 26, 11, 30, 0, 0, local))

	doc := NewDocument(testStation)

	assert.Equal(t, time.Date(2024, time.April, 26, 15, 30, 0, 0, time.UTC), doc.FetchTime)
	assert.Equal(t, time.UTC, doc.FetchTime.Location())
	assert.Equal(t, "44097", doc.BuoyID)
	assert.Equal(t, "Block Island, RI", doc.BuoyName)
	assert.InDelta(t, 40.969, doc.BuoyLat, 0)
	assert.InDelta(t, -71.124, doc.BuoyLon, 0)
	assert.Nil(t, doc.Buoy)
	assert.Nil(t, doc.SpectralSummary)
}

func TestSerializeDocument_NullRecords(t *testing.T) {
	freezeClock(t, time.Date(2024, time.April, 26, 15, 30, 0, 0, time.UTC))

	out, err := SerializeDocument(NewDocument(testStation))
	require.NoError(t, err)

	want := `{
  "fetch_time": "2024-04-26T15:30:00Z",
  "buoy_id": "44097",
  "buoy_name": "Block Island, RI",
  "buoy_lat": 40.969,
  "buoy_lon": -71.124,
  "buoy": null,
  "spectral_summary": null
}
`
	assert.Equal(t, want, string(out))
}

func TestSerializeDocument_AbsentValuesAreNull(t *testing.T) {
	freezeClock(t, time.Date(2024, time.April, 26, 15, 30, 0, 0, time.UTC))

	rec, err := ParseStandardReport(stdmetReport(stdmetHeader, stdmetUnits,
		"2024 04 26 15 10 999  5.0  8.0   1.5   8.0   6.1 190 1013.2  14.1  15.0   9.8   MM   MM    MM"))
	require.NoError(t, err)

	doc := NewDocument(testStation)
	doc.Buoy = rec

	out, err := SerializeDocument(doc)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	buoy, ok := generic["buoy"].(map[string]any)
	require.True(t, ok)

	assert.Contains(t, buoy, "wind_direction")
	assert.Nil(t, buoy["wind_direction"])
	assert.InDelta(t, 4.92, buoy["wave_height"], 1e-9)
	assert.Equal(t, "2024-04-26 15:10 UTC", buoy["time"])
	assert.Nil(t, generic["spectral_summary"])
}

func TestSerializeDocument_Roundtrip(t *testing.T) {
	freezeClock(t, time.Date(2024, time.April, 26, 15, 30, 0, 0, time.UTC))

	stdmet, err := ParseStandardReport(stdmetReport(stdmetHeader, stdmetUnits, stdmetRow))
	require.NoError(t, err)
	spectral, err := ParseSpectralSummary(specReport(specHeader, specUnits, specRow), mustLayout(t, "realtime2"))
	require.NoError(t, err)

	doc := NewDocument(Station{ID: "44097", Name: "Block Island <RI> & Sound", Lat: 40.969, Lon: -71.124})
	doc.Buoy = stdmet
	doc.SpectralSummary = spectral

	out, err := SerializeDocument(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"buoy_name": "Block Island <RI> & Sound"`)

	var roundtrip OutputDocument
	require.NoError(t, json.Unmarshal(out, &roundtrip))
	if diff := cmp.Diff(doc, &roundtrip); diff != "" {
		t.Fatalf("roundtrip mismatch (-want +got):\n%s", diff)
	}
}
