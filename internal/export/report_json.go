package export

import (
	"encoding/json"
	"io"

	"catalog-audit/internal/audit"
)

// WriteDiffJSON writes the Result as an indented JSON document.
func WriteDiffJSON(w io.Writer, r audit.Result) error {
	if r.OnlyInA == nil {
		r.OnlyInA = []string{}
	}
	if r.OnlyInB == nil {
		r.OnlyInB = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
