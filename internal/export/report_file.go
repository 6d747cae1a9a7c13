package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalog-audit/internal/audit"
)

// WriteReportFile writes r to path. The format follows the extension:
// .json for JSON, anything else for CSV.
func WriteReportFile(path string, r audit.Result) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create dir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = WriteDiffJSON(f, r)
	default:
		err = WriteDiffCSV(f, r)
	}
	if err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return f.Close()
}
