package admin

import (
	"context"

	statsrepo "cybersphere/repository/stats"
)

// Totals = repository shape
type Totals = statsrepo.Totals

type Repo interface {
	Totals(ctx context.Context) (*Totals, error)
}

// Service exposes the admin dashboard aggregates. Access control lives in the
// route middleware, not here.
type Service interface {
	Stats(ctx context.Context) (*Totals, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Stats(ctx context.Context) (*Totals, error) {
	return s.r.Totals(ctx)
}
