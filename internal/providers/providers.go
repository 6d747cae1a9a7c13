package providers

import (
	"context"

	"catalog-audit/internal/domain"
)

// CourseSource is one catalog taking part in an audit.
type CourseSource interface {
	Name() string
	// CodeField is the record key holding the course code.
	CodeField() string
	ListCourses(ctx context.Context) ([]domain.Record, error)
}

// PagedSource is a CourseSource that can hand over its records one page at a
// time, so callers can fold pages without keeping every record in memory.
type PagedSource interface {
	CourseSource
	EachPage(ctx context.Context, fn func(page []domain.Record) error) error
}
