// Package csvexport renders tabular query results as CSV downloads.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// Render produces UTF-8 CSV bytes with the header row followed by the data
// rows. Every row must have the same number of cells as the header.
func Render(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", i, len(row), len(header))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns the download name for an entity export, e.g.
// "studies_20260831.csv".
func Filename(entity string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", entity, now.Format("20060102"))
}
