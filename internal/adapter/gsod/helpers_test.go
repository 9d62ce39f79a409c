package gsod

import (
	"fmt"
	"io"
	"log/slog"
)

const testHeader = Header

// gsodLine formats a daily line the way NOAA publishes it.
func gsodLine(date, maxF, minF string) string {
	return fmt.Sprintf("160800 99999  %s    45.3 24    38.1 24  1018.2 24  1008.9 24    6.2 24    2.9 24    5.8  999.9  %6s  %6s  0.00G 999.9  000000", date, maxF, minF)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
