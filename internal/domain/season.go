package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Season is one of the four meteorological seasons.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

// Seasons lists all seasons in calendar order.
var Seasons = []Season{Spring, Summer, Autumn, Winter}

type seasonSpec struct {
	name     string
	period   string
	months   [3]string
	firstDay string // MMDD
	lastDay  string // MMDD, in the year of the last month
}

var seasonSpecs = map[Season]seasonSpec{
	Spring: {name: "spring", period: "Mar-May", months: [3]string{"03", "04", "05"}, firstDay: "0301", lastDay: "0531"},
	Summer: {name: "summer", period: "Jun-Aug", months: [3]string{"06", "07", "08"}, firstDay: "0601", lastDay: "0831"},
	Autumn: {name: "autumn", period: "Sep-Nov", months: [3]string{"09", "10", "11"}, firstDay: "0901", lastDay: "1130"},
	Winter: {name: "winter", period: "Dec-Feb", months: [3]string{"12", "01", "02"}, firstDay: "1201", lastDay: "0228"},
}

// String returns the lower-case season name.
func (s Season) String() string {
	if spec, ok := seasonSpecs[s]; ok {
		return spec.name
	}
	return "Season(" + strconv.Itoa(int(s)) + ")"
}

// Period returns the month span label, e.g. "Mar-May".
func (s Season) Period() string { return seasonSpecs[s].period }

// SpansYearBoundary reports whether the season ends in the following year.
func (s Season) SpansYearBoundary() bool { return s == Winter }

// MarshalText encodes the season by name.
func (s Season) MarshalText() ([]byte, error) {
	if _, ok := seasonSpecs[s]; !ok {
		return nil, fmt.Errorf("unknown season %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a season name.
func (s *Season) UnmarshalText(b []byte) error {
	v, err := ParseSeason(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSeason maps a case-insensitive season name to a Season.
func ParseSeason(name string) (Season, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, s := range Seasons {
		if seasonSpecs[s].name == n {
			return s, nil
		}
	}
	return 0, validationErrorf("season", "unknown season %q", name)
}

// TickLabel returns the chart label of a season year: "01" for 2001, or
// "01/02" for the winter starting in December 2001.
func (s Season) TickLabel(year int) string {
	if s.SpansYearBoundary() {
		return fmt.Sprintf("%02d/%02d", year%100, (year+1)%100)
	}
	return fmt.Sprintf("%02d", year%100)
}

// noMatchPrefix is as long as a full date and made of a character no date
// contains, so prefix matching on it selects nothing.
const noMatchPrefix = "xxxxxxxx"

// SeasonWindow holds the year-month prefixes of one season in one year, or
// the no-match marker when the season is not fully covered by the data.
type SeasonWindow struct {
	Season   Season
	Year     int
	Prefixes []string
}

// Matched reports whether the window selects real dates.
func (w SeasonWindow) Matched() bool {
	return len(w.Prefixes) > 0 && w.Prefixes[0] != noMatchPrefix
}

// Match reports whether a YEARMODA date falls inside the window.
func (w SeasonWindow) Match(date string) bool {
	for _, p := range w.Prefixes {
		if strings.HasPrefix(date, p) {
			return true
		}
	}
	return false
}

// WindowKey identifies a season window.
type WindowKey struct {
	Season Season
	Year   int
}

// Windows maps every (season, year) of a range to its window.
type Windows map[WindowKey]SeasonWindow

// For returns the windows of one season ordered by year.
func (ws Windows) For(s Season, years []int) []SeasonWindow {
	out := make([]SeasonWindow, len(years))
	for i, y := range years {
		w, ok := ws[WindowKey{Season: s, Year: y}]
		if !ok {
			w = noMatchWindow(s, y)
		}
		out[i] = w
	}
	return out
}

// ResolveWindows determines the window of every season for start..end. A
// season gets its three prefixes only when both its first and last day are in
// dates; Winter's last day is 28 February of the following year.
func ResolveWindows(dates DateSet, start, end int) Windows {
	ws := make(Windows, 4*(end-start+1))
	for y := start; y <= end; y++ {
		for _, s := range Seasons {
			ws[WindowKey{Season: s, Year: y}] = resolveWindow(dates, s, y)
		}
	}
	return ws
}

func resolveWindow(dates DateSet, s Season, year int) SeasonWindow {
	spec := seasonSpecs[s]
	ys := strconv.Itoa(year)
	endYear := ys
	if s.SpansYearBoundary() {
		endYear = strconv.Itoa(year + 1)
	}

	if !dates.Contains(ys+spec.firstDay) || !dates.Contains(endYear+spec.lastDay) {
		return noMatchWindow(s, year)
	}

	prefixes := make([]string, 0, len(spec.months))
	for i, m := range spec.months {
		// Winter's first month belongs to year, the rest to year+1.
		if s.SpansYearBoundary() && i > 0 {
			prefixes = append(prefixes, endYear+m)
			continue
		}
		prefixes = append(prefixes, ys+m)
	}
	return SeasonWindow{Season: s, Year: year, Prefixes: prefixes}
}

func noMatchWindow(s Season, year int) SeasonWindow {
	return SeasonWindow{Season: s, Year: year, Prefixes: []string{noMatchPrefix}}
}
