package user

import (
	"context"
	"database/sql"
	"time"

	"cybersphere/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByPhone(ctx context.Context, phone string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	Subscribe(ctx context.Context, userID int64, plan string, expiresAt time.Time, bonusPoints int64) (*model.User, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const userCols = `id, name, email, phone, password_hash, role, plan, plan_expires_at, loyalty_points, created_at`

func scanUser(row *sql.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role,
		&u.Membership.Plan, &u.Membership.ExpiresAt, &u.Membership.LoyaltyPoints,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users(name, email, phone, password_hash, role)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`,
		u.Name, u.Email, u.Phone, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE lower(email) = lower($1)`, email))
}

func (r *repo) ByPhone(ctx context.Context, phone string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE phone = $1`, phone))
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE id = $1`, id))
}

// Subscribe sets the plan and expiry and credits the loyalty bonus in one
// statement, returning the updated row.
func (r *repo) Subscribe(ctx context.Context, userID int64, plan string, expiresAt time.Time, bonusPoints int64) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		UPDATE users
		SET plan = $2,
			plan_expires_at = $3,
			loyalty_points = loyalty_points + $4
		WHERE id = $1
		RETURNING `+userCols, userID, plan, expiresAt, bonusPoints))
}
