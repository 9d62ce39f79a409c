package gsod

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/gsod-seasons/internal/observability"
)

const dateLayout = "20060102"

// YearFetcher returns the daily lines of one station-year file.
type YearFetcher interface {
	FetchYear(ctx context.Context, stationID string, year int) ([]string, error)
}

// UpdateResult summarizes one updater run.
type UpdateResult struct {
	LastDate     string
	Appended     int
	MissingYears []int
}

// Updater appends the days published since the last line of a station file.
type Updater struct {
	fetcher YearFetcher
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewUpdater creates an Updater. A nil clock uses real time.
func NewUpdater(f YearFetcher, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Updater {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Updater{fetcher: f, clock: clock, metrics: metrics, logger: logger}
}

// Update fetches every year from the file's last year up to the current year
// and appends the lines dated after the last record and not after today.
// Unpublished years are skipped; any other fetch error aborts before writing.
func (u *Updater) Update(ctx context.Context, dataFile, stationID string) (UpdateResult, error) {
	lastDate, err := LastDate(dataFile)
	if err != nil {
		return UpdateResult{}, err
	}
	last, err := time.Parse(dateLayout, lastDate)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("last date %q: %w", lastDate, err)
	}
	today := u.clock.Now().UTC().Format(dateLayout)
	result := UpdateResult{LastDate: lastDate}

	var pending []string
	seen := make(map[string]struct{})
	for year := last.Year(); year <= u.clock.Now().UTC().Year(); year++ {
		lines, err := u.fetcher.FetchYear(ctx, stationID, year)
		if errors.Is(err, ErrYearNotPublished) {
			u.logger.Warn("cannot find data for year", "station", stationID, "year", year)
			result.MissingYears = append(result.MissingYears, year)
			continue
		}
		if err != nil {
			return result, err
		}
		for _, line := range lines {
			d := dateField(line)
			if d <= lastDate || d > today {
				continue
			}
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			pending = append(pending, strings.ReplaceAll(line, "* ", "  "))
		}
	}

	if err := appendLines(dataFile, pending); err != nil {
		return result, err
	}
	result.Appended = len(pending)
	u.metrics.LinesAppended.Add(float64(len(pending)))
	u.logger.Info("data file updated", "file", dataFile, "last_date", lastDate, "appended", len(pending))
	return result, nil
}

// LastDate returns the YEARMODA of the last daily line of a GSOD file.
func LastDate(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	var last string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if isHeader(line) || strings.TrimSpace(line) == "" {
			continue
		}
		last = line
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read data file: %w", err)
	}
	d := dateField(last)
	if len(d) != len(dateLayout) {
		return "", fmt.Errorf("%s: no dated line found", path)
	}
	return d, nil
}

func appendLines(path string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open data file for append: %w", err)
	}
	w := bufio.NewWriter(f)
	if !endsWithNewline(f) {
		w.WriteByte('\n') //nolint:errcheck // surfaced by Flush
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, strings.TrimRight(line, "\r\n")+"\n"); err != nil {
			f.Close()
			return fmt.Errorf("append line: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush data file: %w", err)
	}
	return f.Close()
}

func endsWithNewline(f *os.File) bool {
	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return true
	}
	b := make([]byte, 1)
	if _, err := f.ReadAt(b, info.Size()-1); err != nil {
		return true
	}
	return b[0] == '\n'
}
