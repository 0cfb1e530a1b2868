package workstation

import (
	"context"
	"database/sql"

	"cybersphere/model"
)

type Repo interface {
	List(ctx context.Context) ([]model.Workstation, error)
	ByID(ctx context.Context, id int64) (*model.Workstation, error)
	Create(ctx context.Context, name string) (*model.Workstation, error)
	// SetStatusIfNotOccupied flips available/maintenance; it refuses to touch
	// an occupied station. Returns false when no row changed.
	SetStatusIfNotOccupied(ctx context.Context, id int64, status model.WorkstationStatus) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) List(ctx context.Context) ([]model.Workstation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, status, current_session_id
		FROM workstations
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Workstation
	for rows.Next() {
		var w model.Workstation
		if err := rows.Scan(&w.ID, &w.Name, &w.Status, &w.CurrentSessionID); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Workstation, error) {
	w := &model.Workstation{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, status, current_session_id
		FROM workstations
		WHERE id = $1`, id,
	).Scan(&w.ID, &w.Name, &w.Status, &w.CurrentSessionID)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *repo) Create(ctx context.Context, name string) (*model.Workstation, error) {
	w := &model.Workstation{Name: name, Status: model.StationAvailable}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO workstations(name)
		VALUES ($1)
		RETURNING id`, name,
	).Scan(&w.ID)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *repo) SetStatusIfNotOccupied(ctx context.Context, id int64, status model.WorkstationStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE workstations
		SET status = $2
		WHERE id = $1
		AND status <> 'occupied'`, id, status)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
