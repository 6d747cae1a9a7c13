package export

import (
	"encoding/csv"
	"io"

	"catalog-audit/internal/audit"
)

// Keep header order EXACT.
var diffHeader = []string{
	"COURSE_CODE",
	"ONLY_IN",
}

// WriteDiffCSV writes one row per course code present in a single catalog.
// Rows for OnlyInA come first, each block in the Result's sorted order.
func WriteDiffCSV(w io.Writer, r audit.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(diffHeader); err != nil {
		return err
	}
	for _, code := range r.OnlyInA {
		if err := cw.Write([]string{code, r.SourceA}); err != nil {
			return err
		}
	}
	for _, code := range r.OnlyInB {
		if err := cw.Write([]string{code, r.SourceB}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
