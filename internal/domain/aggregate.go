package domain

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Reducer selects how a season's daily values collapse to one number.
type Reducer int

const (
	ReducerMean Reducer = iota
	ReducerSwing
)

func (r Reducer) String() string {
	switch r {
	case ReducerMean:
		return "mean"
	case ReducerSwing:
		return "swing"
	default:
		return "unknown"
	}
}

// MarshalText encodes the reducer by name.
func (r Reducer) MarshalText() ([]byte, error) {
	if r != ReducerMean && r != ReducerSwing {
		return nil, fmt.Errorf("unknown reducer %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a reducer name.
func (r *Reducer) UnmarshalText(b []byte) error {
	v, err := ParseReducer(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseReducer accepts "mean" or "swing".
func ParseReducer(name string) (Reducer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mean":
		return ReducerMean, nil
	case "swing":
		return ReducerSwing, nil
	default:
		return 0, validationErrorf("reducer", "unknown reducer %q (want mean or swing)", name)
	}
}

// Aggregate reduces a sanitized Celsius sequence. swingDays is the block
// length of the swing reducer and is ignored by the mean.
func Aggregate(values []float64, r Reducer, swingDays int) Value {
	switch r {
	case ReducerSwing:
		return Swing(values, swingDays)
	default:
		return Mean(values)
	}
}

// Mean returns the arithmetic mean, undefined for an empty sequence.
func Mean(values []float64) Value {
	if len(values) == 0 {
		return None()
	}
	return Some(stat.Mean(values, nil))
}

// AggregateSeason extracts, sanitizes, and reduces one value per window.
func AggregateSeason(records []DailyRecord, windows []SeasonWindow, r Reducer, swingDays int) (mins, maxs YearSeries) {
	mins = make(YearSeries, len(windows))
	maxs = make(YearSeries, len(windows))
	for i, w := range windows {
		rawMins, rawMaxs := ExtractSeries(records, w)
		mins[i] = Aggregate(Sanitize(rawMins), r, swingDays)
		maxs[i] = Aggregate(Sanitize(rawMaxs), r, swingDays)
	}
	return mins, maxs
}
