package jupiterp

import (
	"context"

	"catalog-audit/internal/domain"
)

// Provider adapts the Jupiterp client into the internal providers.PagedSource interface.
type Provider struct {
	C        *Client
	PageSize int
	Prefix   string // department filter, empty means all
}

func (p Provider) Name() string { return "Jupiterp" }

func (p Provider) CodeField() string { return domain.JupiterpCodeField }

func (p Provider) ListCourses(ctx context.Context) ([]domain.Record, error) {
	return p.C.ListCourses(ctx, p.PageSize, p.Prefix)
}

func (p Provider) EachPage(ctx context.Context, fn func(page []domain.Record) error) error {
	return p.C.EachPage(ctx, p.PageSize, p.Prefix, func(_ int, page []domain.Record) error {
		return fn(page)
	})
}
