package umdio

import (
	"context"

	"catalog-audit/internal/domain"
)

// Provider adapts the umd.io client into the internal providers.CourseSource interface.
type Provider struct {
	C        *Client
	Semester string
}

func (p Provider) Name() string { return "UMD.io" }

func (p Provider) CodeField() string { return domain.UMDIOCodeField }

func (p Provider) ListCourses(ctx context.Context) ([]domain.Record, error) {
	return p.C.ListCourses(ctx, p.Semester)
}
