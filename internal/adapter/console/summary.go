// Package console prints a one-row-per-season summary of the season reports.
package console

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/couchcryptid/gsod-seasons/internal/domain"
)

var summaryHeader = []string{"season", "period", "years", "valid min", "valid max", "last min", "last max", "trend min", "trend max"}

// Summary writes a plain table of the reports to w.
// It implements pipeline.ReportSink.
type Summary struct {
	w io.Writer
}

// NewSummary creates a console sink writing to w.
func NewSummary(w io.Writer) *Summary {
	return &Summary{w: w}
}

// Name identifies the sink in logs and metrics.
func (s *Summary) Name() string { return "console" }

// Emit renders one row per report.
func (s *Summary) Emit(_ context.Context, reports []domain.SeasonReport) error {
	if len(reports) == 0 {
		return nil
	}
	table := tablewriter.NewTable(s.w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignRight,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
	table.Header(summaryHeader)
	if err := table.Bulk(Rows(reports)); err != nil {
		return fmt.Errorf("build summary table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render summary table: %w", err)
	}
	return nil
}

// Rows formats the reports as table cells.
func Rows(reports []domain.SeasonReport) [][]string {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			r.Season.String(),
			r.Period,
			yearSpan(r.Years),
			strconv.Itoa(r.Mins.ValidCount()),
			strconv.Itoa(r.Maxs.ValidCount()),
			lastValue(r.Mins),
			lastValue(r.Maxs),
			lastFloat(r.SmoothMins),
			lastFloat(r.SmoothMaxs),
		})
	}
	return rows
}

func yearSpan(years []int) string {
	if len(years) == 0 {
		return "-"
	}
	return fmt.Sprintf("%d-%d", years[0], years[len(years)-1])
}

func lastValue(s domain.YearSeries) string {
	if len(s) == 0 || !s[len(s)-1].Valid {
		return "-"
	}
	return formatFloat(s[len(s)-1].V)
}

func lastFloat(xs []float64) string {
	if len(xs) == 0 {
		return "-"
	}
	return formatFloat(xs[len(xs)-1])
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
