package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"catalog-audit/internal/providers"
)

// Options wires the two catalogs of an audit run.
type Options struct {
	A providers.CourseSource
	B providers.CourseSource

	// Prefix, when set, restricts both code sets to one department.
	Prefix string

	Log logrus.FieldLogger
}

// Collect fetches every record of src and reduces it to its code set.
// Paged sources are folded page by page so raw records are not retained.
func Collect(ctx context.Context, src providers.CourseSource) (CodeSet, int, error) {
	c := NewCollector(src.Name(), src.CodeField())

	if ps, ok := src.(providers.PagedSource); ok {
		if err := ps.EachPage(ctx, c.Add); err != nil {
			return nil, 0, err
		}
		return c.Codes(), c.Records(), nil
	}

	records, err := src.ListCourses(ctx)
	if err != nil {
		return nil, 0, err
	}
	if err := c.Add(records); err != nil {
		return nil, 0, err
	}
	return c.Codes(), c.Records(), nil
}

// Run fetches A fully, then B fully, and diffs their code sets.
// Any fetch or extraction error aborts the run; no partial Result is returned.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.A == nil || opts.B == nil {
		return Result{}, errors.New("audit: both sources are required")
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	a, recordsA, err := collectLogged(ctx, opts.A, log)
	if err != nil {
		return Result{}, err
	}
	b, recordsB, err := collectLogged(ctx, opts.B, log)
	if err != nil {
		return Result{}, err
	}

	a = a.FilterPrefix(opts.Prefix)
	b = b.FilterPrefix(opts.Prefix)

	res := Diff(a, b)
	res.SourceA = opts.A.Name()
	res.SourceB = opts.B.Name()
	res.RecordsA = recordsA
	res.RecordsB = recordsB
	return res, nil
}

func collectLogged(ctx context.Context, src providers.CourseSource, log logrus.FieldLogger) (CodeSet, int, error) {
	codes, records, err := Collect(ctx, src)
	if err != nil {
		return nil, 0, fmt.Errorf("audit: collect %s: %w", src.Name(), err)
	}
	log.WithFields(logrus.Fields{
		"source":  src.Name(),
		"records": records,
		"codes":   codes.Len(),
	}).Info("collected course codes")
	return codes, records, nil
}
