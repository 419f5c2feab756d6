package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// WriteCSV writes the roster with the result columns appended.
func WriteCSV(w io.Writer, roster *Roster, results []Result) error {
	if len(results) != len(roster.Records) {
		return fmt.Errorf("have %d results for %d records", len(results), len(roster.Records))
	}
	writer := csv.NewWriter(w)
	header := append(append([]string(nil), roster.Header...), ResultColumns...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, record := range roster.Records {
		row := make([]string, len(roster.Header), len(roster.Header)+len(ResultColumns))
		copy(row, record)
		status := results[i].Status
		row = append(row, string(status.WFA), string(status.LHFA), string(status.WFH), string(status.MUACStatus))
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write line %d: %w", results[i].Line, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush results: %w", err)
	}
	return nil
}

// WriteJSON writes the results as an indented JSON array.
func WriteJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}
