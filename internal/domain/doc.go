// Package domain models NOAA National Data Buoy Center (NDBC) realtime buoy
// reports and the fallback document built from them.
//
// # Data Source
//
// NDBC publishes rolling 45-day text files per station under
// https://www.ndbc.noaa.gov/data/realtime2/. Two are consumed here:
//
//	<station>.txt   standard meteorological data
//	<station>.spec  spectral wave summary
//
// Both files start with two comment lines (column names, then units) followed
// by observations, newest first. Only the newest observation (the third line)
// is used.
//
// # Standard Meteorological Layout
//
//	#YY  MM DD hh mm WDIR WSPD GST  WVHT   DPD   APD MWD   PRES  ATMP  WTMP  DEWP  VIS PTDY  TIDE
//	#yr  mo dy hr mn degT m/s  m/s     m   sec   sec degT   hPa  degC  degC  degC  nmi  hPa    ft
//	2024 04 26 15 10 200  6.0  8.0   1.2     9   6.1 190 1013.2  14.1  12.9   9.8   MM   MM    MM
//
// Columns are addressed by header name. Month and minute share the name
// "MM"/"mm" and differ only by case, so lookups are case sensitive.
//
// # Spectral Summary Layout
//
//	#YY  MM DD hh mm WVHT  SwH  SwP  WWH  WWP SwD WWD  STEEPNESS  APD MWD
//	#yr  mo dy hr mn    m    m  sec    m  sec  -  degT     -      sec degT
//	2024 04 26 15 10  1.2  1.0  9.1  0.6  4.8 SSE  SW    AVERAGE  6.1 167
//
// The header abbreviations are not stable across layout revisions, so columns
// are addressed by position through a [SpectralLayout].
//
// # Missing Data
//
// NDBC writes "MM" for a missing measurement, and older files use numeric
// placeholders instead: 99.0 for most fields, 999 for directions and 9999
// for pressure. A value at or above the field's sentinel, a non-numeric token
// and a non-finite number all decode to an absent (nil) value, which
// serializes as JSON null.
//
// # Units
//
// The standard report is converted for display: wave height to feet, water
// and air temperature to Fahrenheit, wind speed and gust to miles per hour.
// Periods, directions and pressure keep their published units and precision.
// The spectral summary is passed through in metres and seconds.
package domain
