package gsod

import (
	"bufio"
	"fmt"
	"io"

	"github.com/couchcryptid/gsod-seasons/internal/domain"
)

// Header is the column header NOAA puts at the top of every station-year file.
const Header = "STN--- WBAN   YEARMODA    TEMP       DEWP      SLP        STP       VISIB      WDSP     MXSPD   GUST    MAX     MIN   PRCP   SNDP   FRSHTT"

// FormatLine renders a record in the GSOD daily layout. Columns the analysis
// does not read carry their missing markers, except TEMP which is the
// midpoint of MIN and MAX.
func FormatLine(rec domain.DailyRecord) string {
	temp := domain.MissingTemperature
	if rec.MinF != domain.MissingTemperature && rec.MaxF != domain.MissingTemperature {
		temp = (rec.MinF + rec.MaxF) / 2
	}
	return fmt.Sprintf("%-6s %-5s  %s  %6.1f 24  9999.9  0  9999.9  0  9999.9  0  999.9  0  999.9  0  999.9  999.9  %6.1f  %6.1f   0.00I 999.9  000000",
		rec.Station, rec.WBAN, rec.Date, temp, rec.MaxF, rec.MinF)
}

// WriteTable writes a header line followed by one line per record.
func WriteTable(w io.Writer, t *domain.Table) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range t.Records {
		if _, err := fmt.Fprintln(bw, FormatLine(rec)); err != nil {
			return fmt.Errorf("write %s: %w", rec.Date, err)
		}
	}
	return bw.Flush()
}
