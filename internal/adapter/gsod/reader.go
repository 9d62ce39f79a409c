// Package gsod reads, looks up, and updates NOAA Global Summary of the Day
// station files.
package gsod

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/gsod-seasons/internal/domain"
)

// Column positions of a whitespace-split GSOD line:
// STN--- WBAN YEARMODA TEMP TEMP_CNT DEWP DEWP_CNT SLP SLP_CNT STP STP_CNT
// VISIB VISIB_CNT WDSP WDSP_CNT MXSPD GUST MAX MIN PRCP SNDP FRSHTT
const (
	colStation = 0
	colWBAN    = 1
	colDate    = 2
	colMax     = 17
	colMin     = 18
	minColumns = colMin + 1
)

// FileLoader reads a station table from a file on disk.
// It implements pipeline.TableLoader.
type FileLoader struct {
	path string
}

// NewFileLoader creates a loader for the GSOD file at path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Load reads the whole file.
func (l *FileLoader) Load(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(l.path)
}

// ReadFile loads a station's concatenated GSOD file.
func ReadFile(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadTable parses GSOD lines. Header lines and blank lines are skipped.
func ReadTable(r io.Reader) (*domain.Table, error) {
	var records []domain.DailyRecord
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		if isHeader(line) || strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read gsod lines: %w", err)
	}
	return domain.NewTable(records), nil
}

// ParseLine parses one daily GSOD line.
func ParseLine(line string) (domain.DailyRecord, error) {
	fields := strings.Fields(line)
	if len(fields) < minColumns {
		return domain.DailyRecord{}, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(fields))
	}
	date := fields[colDate]
	if len(date) != 8 {
		return domain.DailyRecord{}, fmt.Errorf("YEARMODA %q: want 8 digits", date)
	}
	if _, err := strconv.Atoi(date); err != nil {
		return domain.DailyRecord{}, fmt.Errorf("YEARMODA %q: %w", date, err)
	}
	maxF, err := parseTemperature(fields[colMax])
	if err != nil {
		return domain.DailyRecord{}, fmt.Errorf("MAX: %w", err)
	}
	minF, err := parseTemperature(fields[colMin])
	if err != nil {
		return domain.DailyRecord{}, fmt.Errorf("MIN: %w", err)
	}
	return domain.DailyRecord{
		Station: fields[colStation],
		WBAN:    fields[colWBAN],
		Date:    date,
		MinF:    minF,
		MaxF:    maxF,
	}, nil
}

// parseTemperature strips the "*" flag GSOD puts on values derived from
// hourly observations.
func parseTemperature(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(s, "*"), 64)
}

func isHeader(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "STN")
}

// dateField returns the YEARMODA of a raw line, or "" if it has none.
func dateField(line string) string {
	fields := strings.Fields(line)
	if len(fields) <= colDate {
		return ""
	}
	return fields[colDate]
}
