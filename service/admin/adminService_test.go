package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	totalsFn func(ctx context.Context) (*Totals, error)
}

func (m *mockRepo) Totals(ctx context.Context) (*Totals, error) { return m.totalsFn(ctx) }

func TestStats(t *testing.T) {
	want := &Totals{
		TotalUsers:       12,
		ActiveSessions:   3,
		OpenWorkstations: 5,
		Revenue:          decimal.RequireFromString("41.25"),
	}
	svc := New(&mockRepo{totalsFn: func(ctx context.Context) (*Totals, error) { return want, nil }})

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestStats_Error(t *testing.T) {
	svc := New(&mockRepo{totalsFn: func(ctx context.Context) (*Totals, error) {
		return nil, errors.New("db down")
	}})
	_, err := svc.Stats(context.Background())
	require.Error(t, err)
}
