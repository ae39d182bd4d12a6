package utils

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes a header and rows. Fields with commas, quotes or newlines
// are quoted.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
