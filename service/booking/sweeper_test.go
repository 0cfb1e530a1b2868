package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sweepMock struct {
	gotNow time.Time
	n      int64
}

func (m *sweepMock) CompletePast(ctx context.Context, now time.Time) (int64, error) {
	m.gotNow = now
	return m.n, nil
}

func TestSweeperCompletesPastBookings(t *testing.T) {
	m := &sweepMock{n: 4}
	s := NewSweeper(m)

	before := time.Now().UTC()
	n, err := s.CompletePast(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(4), n)
	require.False(t, m.gotNow.Before(before))
	require.Equal(t, time.UTC, m.gotNow.Location())
}
