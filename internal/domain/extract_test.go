package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractSeries(t *testing.T) {
	recs := dailyRecords(t, "2001-02-27", "2001-06-02", func(d time.Time) (float64, float64) {
		return float64(d.Month()), float64(d.Day())
	})

	w := SeasonWindow{Season: Spring, Year: 2001, Prefixes: []string{"200103", "200104", "200105"}}
	mins, maxs := ExtractSeries(recs, w)

	assert.Len(t, mins, 31+30+31)
	assert.Len(t, maxs, len(mins))
	assert.Equal(t, 3.0, mins[0])
	assert.Equal(t, 1.0, maxs[0])
	assert.Equal(t, 5.0, mins[len(mins)-1])
	assert.Equal(t, 31.0, maxs[len(maxs)-1])
}

func TestExtractSeries_NoMatchWindow(t *testing.T) {
	recs := dailyRecords(t, "2001-01-01", "2001-12-31", constantTemps(40, 60))

	mins, maxs := ExtractSeries(recs, noMatchWindow(Summer, 2001))

	assert.NotNil(t, mins)
	assert.Empty(t, mins)
	assert.Empty(t, maxs)
}

func TestTable_YearRange(t *testing.T) {
	table := NewTable(dailyRecords(t, "1999-11-30", "2002-01-02", constantTemps(40, 60)))

	start, end, err := table.YearRange()
	assert.NoError(t, err)
	assert.Equal(t, 1999, start)
	assert.Equal(t, 2002, end)
	assert.Equal(t, []int{1999, 2000, 2001, 2002}, Years(start, end))
	assert.True(t, table.Dates().Contains("20000229"))
	assert.False(t, table.Dates().Contains("20010229"))
}

func TestTable_YearRangeEmpty(t *testing.T) {
	_, _, err := NewTable(nil).YearRange()
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTable_YearRangeBadDate(t *testing.T) {
	table := NewTable([]DailyRecord{{Date: "19x1"}})
	_, _, err := table.YearRange()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "first record")
}
