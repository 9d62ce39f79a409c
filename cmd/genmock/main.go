// Command genmock writes a synthetic GSOD station file with a seasonal
// temperature cycle, a slow warming trend, and scattered missing values. The
// fixture exercises the whole season pipeline without NOAA access.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -station 160800-99999 \
//	  -from 1990 -to 2020 \
//	  -out data/160800-99999.full \
//	  -history data/isd-history.txt
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/gsod-seasons/internal/adapter/gsod"
	"github.com/couchcryptid/gsod-seasons/internal/domain"
)

type climate struct {
	meanF       float64 // annual mean of the daily midpoint
	amplitudeF  float64 // half the summer-winter difference
	spreadF     float64 // half the daily max-min difference
	trendFYear  float64 // warming per year
	noiseF      float64 // day-to-day standard deviation
	missingRate float64 // share of MIN/MAX values replaced by the sentinel
}

var defaultClimate = climate{
	meanF:       55,
	amplitudeF:  20,
	spreadF:     9,
	trendFYear:  0.05,
	noiseF:      4,
	missingRate: 0.01,
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	station := flag.String("station", "160800-99999", "station id USAF-WBAN")
	name := flag.String("name", "SYNTHETIC/STATION", "station name written to the history file")
	from := flag.Int("from", 1990, "first year")
	to := flag.Int("to", 2020, "last year")
	out := flag.String("out", "", "output GSOD file (default data/<station>.full)")
	history := flag.String("history", "", "optional isd-history.txt to write")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if *to < *from {
		return fmt.Errorf("-to %d is before -from %d", *to, *from)
	}
	usaf, wban, ok := strings.Cut(*station, "-")
	if !ok {
		return fmt.Errorf("station %q: want USAF-WBAN", *station)
	}
	if *out == "" {
		*out = filepath.Join("data", *station+".full")
	}

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	table := domain.NewTable(generate(rng, defaultClimate, usaf, wban, *from, *to))

	if err := writeFile(*out, func(f *os.File) error { return gsod.WriteTable(f, table) }); err != nil {
		return err
	}
	fmt.Printf("wrote %d days (%d-%d) to %s\n", table.Len(), *from, *to, *out)

	if *history != "" {
		line := fmt.Sprintf("%-6s %-5s %-29s CTRY    XXXX  +00.000 +000.000 +0000.0 %d0101 %d1231\n",
			usaf, wban, *name, *from, *to)
		if err := writeFile(*history, func(f *os.File) error {
			_, err := f.WriteString(line)
			return err
		}); err != nil {
			return err
		}
		fmt.Printf("wrote station history to %s\n", *history)
	}
	return nil
}

func generate(rng *rand.Rand, c climate, usaf, wban string, from, to int) []domain.DailyRecord {
	start := time.Date(from, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to, time.December, 31, 0, 0, 0, 0, time.UTC)

	var recs []domain.DailyRecord
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		// Coldest around mid January, warmest around mid July.
		phase := 2 * math.Pi * float64(d.YearDay()-196) / 365.25
		mid := c.meanF + c.amplitudeF*math.Cos(phase) + c.trendFYear*float64(d.Year()-from) + rng.NormFloat64()*c.noiseF

		recs = append(recs, domain.DailyRecord{
			Station: usaf,
			WBAN:    wban,
			Date:    d.Format("20060102"),
			MinF:    maybeMissing(rng, c.missingRate, mid-c.spreadF),
			MaxF:    maybeMissing(rng, c.missingRate, mid+c.spreadF),
		})
	}
	return recs
}

func maybeMissing(rng *rand.Rand, rate, v float64) float64 {
	if rng.Float64() < rate {
		return domain.MissingTemperature
	}
	return math.Round(v*10) / 10
}

func writeFile(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
