package audit

// Result is the outcome of comparing two catalogs.
type Result struct {
	SourceA string `json:"sourceA"`
	SourceB string `json:"sourceB"`

	// Distinct codes seen in each catalog.
	TotalA int `json:"totalA"`
	TotalB int `json:"totalB"`

	// Records fetched from each catalog, duplicates included and before
	// any prefix filter. Set by Run.
	RecordsA int `json:"recordsA"`
	RecordsB int `json:"recordsB"`

	OnlyInA []string `json:"onlyInA"`
	OnlyInB []string `json:"onlyInB"`
}

// Diff compares two code sets.
// Returns:
// - OnlyInA: a − b, sorted
// - OnlyInB: b − a, sorted
func Diff(a, b CodeSet) Result {
	return Result{
		TotalA:  a.Len(),
		TotalB:  b.Len(),
		OnlyInA: a.Diff(b).Sorted(),
		OnlyInB: b.Diff(a).Sorted(),
	}
}

func (r Result) CountOnlyInA() int { return len(r.OnlyInA) }

func (r Result) CountOnlyInB() int { return len(r.OnlyInB) }

// InSync reports whether both catalogs hold the same codes.
func (r Result) InSync() bool {
	return len(r.OnlyInA) == 0 && len(r.OnlyInB) == 0
}
