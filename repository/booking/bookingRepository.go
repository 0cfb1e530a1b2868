package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cybersphere/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrOverlap means a confirmed booking already covers part of the interval.
var ErrOverlap = errors.New("booking overlap")

type ListRow struct {
	Booking         model.Booking `json:"booking"`
	UserName        string        `json:"user_name"`
	WorkstationName string        `json:"workstation_name"`
}

type Repo interface {
	// InsertConfirmed is the atomic check-and-insert: it locks the workstation
	// row, re-runs the overlap query and inserts inside one transaction, so two
	// concurrent requests cannot both pass the check.
	InsertConfirmed(ctx context.Context, b *model.Booking) error
	Get(ctx context.Context, id int64) (*model.Booking, error)
	CancelConfirmed(ctx context.Context, id int64) (bool, error)
	ListRecent(ctx context.Context, limit int) ([]ListRow, error)
	CompletePast(ctx context.Context, now time.Time) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) InsertConfirmed(ctx context.Context, b *model.Booking) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Serialize bookings per workstation. ErrNoRows here means the station
	// does not exist; callers map it to a not-found.
	var wsID int64
	if err = tx.QueryRowContext(ctx, `
		SELECT id
		FROM workstations
		WHERE id = $1
		FOR UPDATE`, b.WorkstationID,
	).Scan(&wsID); err != nil {
		return err
	}

	var conflict bool
	if err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE workstation_id = $1
			AND status = 'confirmed'
			AND start_time < $3
			AND end_time > $2
		)`, b.WorkstationID, b.StartTime, b.EndTime,
	).Scan(&conflict); err != nil {
		return err
	}
	if conflict {
		return ErrOverlap
	}

	if err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings(user_id, workstation_id, start_time, end_time, status)
		VALUES ($1,$2,$3,$4,'confirmed')
		RETURNING id, status, created_at`,
		b.UserID, b.WorkstationID, b.StartTime, b.EndTime,
	).Scan(&b.ID, &b.Status, &b.CreatedAt); err != nil {
		// the exclusion constraint backs the check above
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrOverlap
		}
		return err
	}
	return tx.Commit()
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Booking, error) {
	b := &model.Booking{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, workstation_id, start_time, end_time, status, created_at
		FROM bookings
		WHERE id = $1`, id,
	).Scan(&b.ID, &b.UserID, &b.WorkstationID, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) CancelConfirmed(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE id = $1
		AND status = 'confirmed'`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) ListRecent(ctx context.Context, limit int) ([]ListRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			b.id, b.user_id, b.workstation_id, b.start_time, b.end_time,
			b.status, b.created_at,
			u.name AS user_name,
			w.name AS workstation_name
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN workstations w ON w.id = b.workstation_id
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var lr ListRow
		if err := rows.Scan(
			&lr.Booking.ID, &lr.Booking.UserID, &lr.Booking.WorkstationID,
			&lr.Booking.StartTime, &lr.Booking.EndTime, &lr.Booking.Status,
			&lr.Booking.CreatedAt, &lr.UserName, &lr.WorkstationName,
		); err != nil {
			return nil, err
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

func (r *repo) CompletePast(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET status = 'completed'
		WHERE status = 'confirmed'
		AND end_time < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
