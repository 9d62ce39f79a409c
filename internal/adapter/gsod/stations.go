package gsod

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrStationNotFound is returned when the station history has no line for a station.
var ErrStationNotFound = errors.New("station not found")

// LookupStationName returns the first word of the station name recorded in
// the ISD station history (isd-history.txt) for an id like "160800-99999".
func LookupStationName(path, stationID string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open station history: %w", err)
	}
	defer f.Close()

	key := StationKey(stationID)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, key) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return "", fmt.Errorf("station %s: history line has no name", stationID)
		}
		return fields[2], nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read station history: %w", err)
	}
	return "", fmt.Errorf("%w: %s", ErrStationNotFound, stationID)
}

// StationKey converts "160800-99999" to the history file key "160800 99999".
func StationKey(stationID string) string {
	return strings.Replace(stationID, "-", " ", 1)
}
