// Command validate performs integrity checks on a GSOD station file before it
// is analysed: line format, date ordering, temperature plausibility, station
// consistency, and season window coverage.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -file data/160800-99999.full \
//	  -station 160800-99999
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/gsod-seasons/internal/adapter/gsod"
	"github.com/couchcryptid/gsod-seasons/internal/domain"
)

// Plausible daily extremes in °F; values outside are data errors.
const (
	minPlausibleF = -130.0
	maxPlausibleF = 140.0
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	file := flag.String("file", "", "GSOD station file to validate")
	station := flag.String("station", "", "expected station id USAF-WBAN (optional)")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*file, *station); code != 0 {
		os.Exit(code)
	}
}

func run(path, station string) int {
	fmt.Println("=== GSOD Station File Validation ===")
	fmt.Println()

	table, err := gsod.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	if table.Len() == 0 {
		fmt.Fprintf(os.Stderr, "FATAL: %s has no daily lines\n", path)
		return 1
	}

	coverage, coveragePhase := validateSeasonCoverage(table)
	phases := []*phase{
		validateDateOrdering(table),
		validateTemperatures(table),
		validateStation(table, station),
		coveragePhase,
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d daily lines, %s to %s\n", table.Len(), table.Records[0].Date, table.Records[table.Len()-1].Date)
	for _, s := range domain.Seasons {
		fmt.Printf("  %-7s %d/%d complete years\n", s, coverage[s].matched, coverage[s].years)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateDateOrdering(t *domain.Table) *phase {
	p := &phase{name: "Dates are valid and strictly increasing"}
	prev := ""
	for i, rec := range t.Records {
		if _, err := time.Parse("20060102", rec.Date); err != nil {
			p.errorf("record %d: invalid calendar date %s", i+1, rec.Date)
		}
		if prev != "" && rec.Date <= prev {
			p.errorf("record %d: %s does not follow %s", i+1, rec.Date, prev)
		}
		prev = rec.Date
	}
	return p
}

func validateTemperatures(t *domain.Table) *phase {
	p := &phase{name: "MIN/MAX values are plausible"}
	for _, rec := range t.Records {
		checkPlausible(p, rec.Date, "MIN", rec.MinF)
		checkPlausible(p, rec.Date, "MAX", rec.MaxF)
		if rec.MinF != domain.MissingTemperature && rec.MaxF != domain.MissingTemperature && rec.MinF > rec.MaxF {
			p.errorf("%s: MIN %.1f above MAX %.1f", rec.Date, rec.MinF, rec.MaxF)
		}
	}
	return p
}

func checkPlausible(p *phase, date, col string, v float64) {
	if v == domain.MissingTemperature {
		return
	}
	if v < minPlausibleF || v > maxPlausibleF {
		p.errorf("%s: %s %.1f outside [%.0f, %.0f]", date, col, v, minPlausibleF, maxPlausibleF)
	}
}

func validateStation(t *domain.Table, station string) *phase {
	p := &phase{name: "Lines belong to a single station"}
	first := t.Records[0].Station + "-" + t.Records[0].WBAN
	if station != "" && !strings.EqualFold(first, station) {
		p.errorf("file is for station %s, expected %s", first, station)
	}
	for _, rec := range t.Records[1:] {
		if id := rec.Station + "-" + rec.WBAN; id != first {
			p.errorf("%s: station %s differs from %s", rec.Date, id, first)
		}
	}
	return p
}

type seasonCoverage struct {
	years   int
	matched int
}

// validateSeasonCoverage fails for seasons without a single complete year,
// which the analysis would report without a trend.
func validateSeasonCoverage(t *domain.Table) (map[domain.Season]seasonCoverage, *phase) {
	p := &phase{name: "Every season has a complete year"}
	coverage := make(map[domain.Season]seasonCoverage, len(domain.Seasons))

	start, end, err := t.YearRange()
	if err != nil {
		p.errorf("year range: %v", err)
		return coverage, p
	}
	years := domain.Years(start, end)
	windows := domain.ResolveWindows(t.Dates(), start, end)
	for _, s := range domain.Seasons {
		c := seasonCoverage{years: len(years)}
		for _, w := range windows.For(s, years) {
			if w.Matched() {
				c.matched++
			}
		}
		if c.matched == 0 {
			p.errorf("%s: no year has both its first and last day", s)
		}
		coverage[s] = c
	}
	return coverage, p
}
