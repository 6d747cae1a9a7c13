package export

import (
	"fmt"
	"io"
	"strings"

	"catalog-audit/internal/audit"
)

// WriteText prints the human-readable audit summary. The totals are distinct
// codes; the raw record counts follow in parentheses.
func WriteText(w io.Writer, r audit.Result) error {
	lines := []string{
		fmt.Sprintf("Found %d %s course codes (%d records fetched).", r.TotalA, r.SourceA, r.RecordsA),
		fmt.Sprintf("Found %d %s course codes (%d records fetched).", r.TotalB, r.SourceB, r.RecordsB),
		fmt.Sprintf("Courses only in %s (%d): %s", r.SourceA, r.CountOnlyInA(), codeList(r.OnlyInA)),
		fmt.Sprintf("Courses only in %s (%d): %s", r.SourceB, r.CountOnlyInB(), codeList(r.OnlyInB)),
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func codeList(codes []string) string {
	return "[" + strings.Join(codes, ", ") + "]"
}
