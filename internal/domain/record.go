package domain

import (
	"fmt"
	"strconv"
)

// MissingTemperature is the GSOD sentinel for an unavailable MIN or MAX value.
const MissingTemperature = 9999.9

// DailyRecord is one station observation as read from a GSOD file.
type DailyRecord struct {
	Station string  `json:"station"`
	WBAN    string  `json:"wban"`
	Date    string  `json:"date"` // YEARMODA, e.g. "20240301"
	MinF    float64 `json:"min_f"`
	MaxF    float64 `json:"max_f"`
}

// Year returns the four-digit year of the record's date.
func (r DailyRecord) Year() (int, error) {
	if len(r.Date) < 4 {
		return 0, fmt.Errorf("date %q: too short", r.Date)
	}
	y, err := strconv.Atoi(r.Date[:4])
	if err != nil {
		return 0, fmt.Errorf("date %q: %w", r.Date, err)
	}
	return y, nil
}

// DateSet answers date membership queries over a table's YEARMODA values.
type DateSet map[string]struct{}

// Contains reports whether date is present.
func (s DateSet) Contains(date string) bool {
	_, ok := s[date]
	return ok
}

// Table is the read-only, in-order record set of one station.
type Table struct {
	Records []DailyRecord
	dates   DateSet
}

// NewTable indexes records by date. The slice is retained, not copied.
func NewTable(records []DailyRecord) *Table {
	dates := make(DateSet, len(records))
	for i := range records {
		dates[records[i].Date] = struct{}{}
	}
	return &Table{Records: records, dates: dates}
}

// Dates returns the date-membership index.
func (t *Table) Dates() DateSet { return t.dates }

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// YearRange returns the years of the first and last records.
func (t *Table) YearRange() (start, end int, err error) {
	if len(t.Records) == 0 {
		return 0, 0, ErrNoData
	}
	start, err = t.Records[0].Year()
	if err != nil {
		return 0, 0, fmt.Errorf("first record: %w", err)
	}
	end, err = t.Records[len(t.Records)-1].Year()
	if err != nil {
		return 0, 0, fmt.Errorf("last record: %w", err)
	}
	if end < start {
		return 0, 0, fmt.Errorf("records out of order: first year %d after last year %d", start, end)
	}
	return start, end, nil
}

// Years lists start..end inclusive.
func Years(start, end int) []int {
	if end < start {
		return nil
	}
	years := make([]int, 0, end-start+1)
	for y := start; y <= end; y++ {
		years = append(years, y)
	}
	return years
}
