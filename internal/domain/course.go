package domain

// Record is one course object as decoded from a catalog API response.
// Only the code field is interpreted; every other key is carried through.
type Record map[string]any

// Code field names used by each catalog.
const (
	JupiterpCodeField = "course_code"
	UMDIOCodeField    = "course_id"
)

// Lookup returns the raw value stored under field and whether it was present.
func (r Record) Lookup(field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}
