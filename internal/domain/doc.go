// Package domain models the Metro Manila class-suspension prediction core:
// canonical local government units, daily weather records, typhoon bulletin
// status, and the fixed 33-feature vector consumed by the external classifier.
//
// # Units
//
// The monitored region is the fixed set of 17 Metro Manila LGUs. Each unit
// carries a stable integer index (alphabetical position) used as the lgu_id
// categorical feature; the mapping is part of the contract with any trained
// classifier artifact and must never change underneath one. Upstream sources
// deliver unit names in inconsistent encodings: files written through a
// latin-1 round trip turn "ñ" into the two-byte form "Ã±", producing
// "Las PiÃ±as" and "ParaÃ±aque". Known variant forms are mapped explicitly
// before any generic casing cleanup; strings that match nothing are returned
// title-cased and left for the caller to reject.
//
// # Weather records
//
// One record per (unit, date) with the Open-Meteo daily variables
// (precipitation_sum, wind_speed_10m_max, pressure_msl_min, ...). Values are
// nullable; each variable has a typed default used when a value is absent:
//
//	precipitation, wind, weather code, CAPE   0.0
//	pressure_msl_min                          1010.0 hPa
//	temperature / apparent temperature max    30.0 °C
//	relative_humidity_2m_mean                 70.0 %
//	cloud_cover_max                           50.0 %
//	dew_point_2m_mean                         24.0 °C
//
// The defaults live in one table so the yesterday-lookup path and the
// same-day forecast path cannot drift apart. Records carry a provenance tag:
// "forecast" data feeds feature vectors, "actual" data exists only for
// after-the-fact weather validation.
//
// # Typhoon status
//
// One record per date from PAGASA-style bulletins: active-typhoon flag, name,
// wind signal level (TCWS, ordinal 0-5), whether Metro Manila is in the
// affected-area list, and a rainfall warning (ordinal NONE/YELLOW/ORANGE/RED).
// The two ordinals are separate scales and are never compared to each other.
// A bulletin can report a high signal for provinces far from the capital, so
// the signal only becomes "effective" for a unit inside the affected area;
// outside it the effective level is 0 and the raw level is kept for audit.
//
// # Feature vectors
//
// Exactly 33 named values in a fixed order: 8 temporal, lgu_id, flood risk,
// 10 yesterday point values, 3 rolling aggregates, 10 same-day forecast
// values. The names and order are shared with the trained classifier; a
// build that produces any other count fails with ErrSchemaViolation rather
// than silently proceeding.
//
// The two lookback policies are deliberately asymmetric. Yesterday's point
// values substitute typed defaults when the archive has no entry, while the
// 3-day and 7-day rolling aggregates simply skip days without data, so a
// window with no archive coverage sums (or maxes) to 0.0. Missing history is
// routine at range boundaries and must degrade, not fail.
package domain
