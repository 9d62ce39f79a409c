package domain

import (
	"testing"
	"time"
)

// dailyRecords builds one record per day from..to inclusive (YYYY-MM-DD),
// with min/max supplied by fn.
func dailyRecords(t *testing.T, from, to string, fn func(day time.Time) (minF, maxF float64)) []DailyRecord {
	t.Helper()
	start, err := time.Parse(time.DateOnly, from)
	if err != nil {
		t.Fatalf("parse %q: %v", from, err)
	}
	end, err := time.Parse(time.DateOnly, to)
	if err != nil {
		t.Fatalf("parse %q: %v", to, err)
	}
	var recs []DailyRecord
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		minF, maxF := fn(d)
		recs = append(recs, DailyRecord{
			Station: "160800",
			WBAN:    "99999",
			Date:    d.Format("20060102"),
			MinF:    minF,
			MaxF:    maxF,
		})
	}
	return recs
}

func constantTemps(minF, maxF float64) func(time.Time) (float64, float64) {
	return func(time.Time) (float64, float64) { return minF, maxF }
}

func dateSet(dates ...string) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}
