package stats

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

type Totals struct {
	TotalUsers       int64           `json:"total_users"`
	ActiveSessions   int64           `json:"active_sessions"`
	OpenWorkstations int64           `json:"open_workstations"`
	Revenue          decimal.Decimal `json:"revenue"`
}

type Repo interface {
	Totals(ctx context.Context) (*Totals, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Totals(ctx context.Context) (*Totals, error) {
	t := &Totals{}
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM sessions WHERE status = 'active'),
			(SELECT count(*) FROM workstations WHERE status = 'available'),
			(SELECT COALESCE(sum(amount), 0) FROM bills WHERE paid)`,
	).Scan(&t.TotalUsers, &t.ActiveSessions, &t.OpenWorkstations, &t.Revenue)
	if err != nil {
		return nil, err
	}
	return t, nil
}
