// Package domain models NOAA Global Summary of the Day (GSOD) temperature
// records and the seasonal signal processing applied to them.
//
// # Data Source
//
// GSOD files are published per station and year by NOAA NCEI under
// https://www.ncei.noaa.gov/pub/data/gsod/<year>/<station>-<year>.op.gz. The
// updater appends the daily lines of those files to one "<station>.full" file,
// which the loader reads at startup.
//
// # GSOD Conventions
//
// Station identifiers:
//
//	"<USAF>-<WBAN>"  →  e.g. "160800-99999"
//	The station history file (isd-history.txt) keys stations by the same
//	two numbers separated by a space: "160800 99999".
//
// Dates:
//
//	YEARMODA, eight digits: "20240301" = 1 March 2024.
//	Season matching works on the six-digit year-month prefix, e.g. "202403".
//
// Temperatures:
//
//	MAX and MIN are daily extremes in degrees Fahrenheit with one decimal.
//	A trailing "*" marks a value derived from hourly data; it is stripped.
//	9999.9 is the sentinel for a missing observation and is dropped before
//	unit conversion.
//
// # Seasons
//
// Seasons are meteorological, three whole months each:
//
//	Spring: Mar–May | Summer: Jun–Aug | Autumn: Sep–Nov | Winter: Dec–Feb
//
// Winter of year Y runs from December of Y to February of Y+1. A season is only
// analyzed for a year when both its first and its last calendar day are
// present in the data; otherwise its window is the no-match marker and the
// year contributes a missing value.
//
// # Reducers
//
// A season's daily values reduce to one number per year, either the
// arithmetic mean or the swing: the spectral centroid of the daily sequence,
// in cycles per day. A slowly varying season has its spectral energy near
// frequency 0 and a low swing; day-to-day volatility raises it.
//
// # Smoothing
//
// The year series of each season is gap-filled from the nearest present year
// and then smoothed with a windowed moving average. The sequence is mirrored
// at both ends before convolution so every year gets a smoothed value. See
// [Smooth].
package domain
