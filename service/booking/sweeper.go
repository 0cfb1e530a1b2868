package booking

import (
	"context"
	"time"
)

// Sweeper closes out the booking lifecycle: confirmed bookings whose interval
// has passed become completed.
type Sweeper interface {
	CompletePast(ctx context.Context) (int64, error)
}

type SweepRepo interface {
	CompletePast(ctx context.Context, now time.Time) (int64, error)
}

type sweeper struct {
	r SweepRepo
}

func NewSweeper(r SweepRepo) Sweeper { return &sweeper{r: r} }

func (s *sweeper) CompletePast(ctx context.Context) (int64, error) {
	return s.r.CompletePast(ctx, time.Now().UTC())
}
