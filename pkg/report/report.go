// Package report writes panel measurements as CSV or JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/philipparndt/gopanels/pkg/analysis"
)

// Header is the first CSV record
var Header = []string{"Panel", "Edge Count", "Edge Lengths"}

// Record is one reported panel
type Record struct {
	Panel     string    `json:"panel"`
	EdgeCount int       `json:"edgeCount"`
	Lengths   []string  `json:"lengths"`
	Raw       []float64 `json:"raw"`
	Perimeter float64   `json:"perimeter"`
}

// Build converts measurements into records using the given units
func Build(measurements []analysis.PanelMeasurement, units analysis.Units) []Record {
	records := make([]Record, 0, len(measurements))
	for _, m := range measurements {
		records = append(records, Record{
			Panel:     m.Name,
			EdgeCount: m.EdgeCount(),
			Lengths:   m.FormattedLengths(units),
			Raw:       m.Lengths(),
			Perimeter: m.Perimeter,
		})
	}
	return records
}

// WriteCSV writes the header and one line per record: the panel name, the
// edge count and then every formatted length as its own field.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		fields := make([]string, 0, 2+len(r.Lengths))
		fields = append(fields, r.Panel, strconv.Itoa(r.EdgeCount))
		fields = append(fields, r.Lengths...)
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("failed to write panel %q: %w", r.Panel, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the records as an indented JSON array
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
