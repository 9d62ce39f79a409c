package domain

// ExtractSeries selects the records inside w, in table order, and returns
// their raw MIN and MAX values. A no-match window yields two empty slices.
func ExtractSeries(records []DailyRecord, w SeasonWindow) (mins, maxs []float64) {
	mins = []float64{}
	maxs = []float64{}
	if !w.Matched() {
		return mins, maxs
	}
	for i := range records {
		if !w.Match(records[i].Date) {
			continue
		}
		mins = append(mins, records[i].MinF)
		maxs = append(maxs, records[i].MaxF)
	}
	return mins, maxs
}
