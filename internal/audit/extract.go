package audit

import (
	"fmt"

	"catalog-audit/internal/domain"
)

// FieldError reports a record whose code field is absent or not a string.
type FieldError struct {
	Source  string
	Field   string
	Index   int // position of the record in the source's full listing
	Value   any // nil when the field is missing
	Missing bool
}

func (e *FieldError) Error() string {
	src := e.Source
	if src == "" {
		src = "source"
	}
	if e.Missing {
		return fmt.Sprintf("%s record %d: missing field %q", src, e.Index, e.Field)
	}
	return fmt.Sprintf("%s record %d: field %q is %T, want string", src, e.Index, e.Field, e.Value)
}

// Collector folds records into a CodeSet page by page. Record indexes in
// errors keep counting across calls to Add.
type Collector struct {
	Source string
	Field  string

	codes   CodeSet
	records int
}

func NewCollector(source, field string) *Collector {
	return &Collector{Source: source, Field: field, codes: NewCodeSet()}
}

// Add extracts the code of every record. On error the collector keeps the
// codes added before the bad record, but callers should treat the run as failed.
func (c *Collector) Add(records []domain.Record) error {
	if c.codes == nil {
		c.codes = NewCodeSet()
	}
	for i, r := range records {
		idx := c.records + i
		v, ok := r.Lookup(c.Field)
		if !ok {
			return &FieldError{Source: c.Source, Field: c.Field, Index: idx, Missing: true}
		}
		code, ok := v.(string)
		if !ok {
			return &FieldError{Source: c.Source, Field: c.Field, Index: idx, Value: v}
		}
		c.codes.Add(code)
	}
	c.records += len(records)
	return nil
}

func (c *Collector) Codes() CodeSet {
	if c.codes == nil {
		return NewCodeSet()
	}
	return c.codes
}

// Records is the number of records folded so far.
func (c *Collector) Records() int { return c.records }

// ExtractCodes returns the set of values found at field across records.
func ExtractCodes(records []domain.Record, field string) (CodeSet, error) {
	c := NewCollector("", field)
	if err := c.Add(records); err != nil {
		return nil, err
	}
	return c.Codes(), nil
}
