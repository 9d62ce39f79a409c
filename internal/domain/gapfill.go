package domain

// FillGaps replaces every undefined entry by the nearest defined one, by
// index distance. When two defined entries are equally near, the earlier one
// wins. A series without any defined entry returns ErrNoData.
func FillGaps(series YearSeries) ([]float64, error) {
	valid := make([]int, 0, len(series))
	for i, v := range series {
		if v.Valid {
			valid = append(valid, i)
		}
	}
	if len(valid) == 0 {
		return nil, ErrNoData
	}

	out := make([]float64, len(series))
	next := 0 // index into valid of the first defined position >= i
	for i, v := range series {
		if v.Valid {
			out[i] = v.V
			next++
			continue
		}
		out[i] = series[nearest(valid, next, i)].V
	}
	return out, nil
}

// nearest picks between valid[next-1] and valid[next], preferring the
// earlier on a tie.
func nearest(valid []int, next, i int) int {
	switch {
	case next == 0:
		return valid[0]
	case next == len(valid):
		return valid[len(valid)-1]
	}
	before, after := valid[next-1], valid[next]
	if after-i < i-before {
		return after
	}
	return before
}
