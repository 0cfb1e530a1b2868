package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cybersphere/model"
)

var (
	// ErrOccupied means the workstation already has an active session.
	ErrOccupied = errors.New("workstation occupied")
	// ErrMaintenance means the workstation is out of service.
	ErrMaintenance = errors.New("workstation under maintenance")
	// ErrNotActive means the session was already ended.
	ErrNotActive = errors.New("session not active")
)

type Repo interface {
	// Start locks the workstation row, verifies it is free and creates the
	// active session plus the occupied back-reference in one transaction.
	Start(ctx context.Context, workstationID, userID int64, start time.Time) (*model.Session, error)
	Get(ctx context.Context, id int64) (*model.Session, error)
	// CloseAndFree marks an active session ended and releases the workstation.
	CloseAndFree(ctx context.Context, sessionID int64, end time.Time, billedMinutes int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Start(ctx context.Context, workstationID, userID int64, start time.Time) (s *model.Session, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var status model.WorkstationStatus
	if err = tx.QueryRowContext(ctx, `
		SELECT status
		FROM workstations
		WHERE id = $1
		FOR UPDATE`, workstationID,
	).Scan(&status); err != nil {
		return nil, err
	}
	switch status {
	case model.StationOccupied:
		return nil, ErrOccupied
	case model.StationMaintenance:
		return nil, ErrMaintenance
	}

	s = &model.Session{
		WorkstationID: workstationID,
		UserID:        userID,
		StartTime:     start,
		Status:        model.SessionActive,
	}
	if err = tx.QueryRowContext(ctx, `
		INSERT INTO sessions(workstation_id, user_id, start_time, status)
		VALUES ($1,$2,$3,'active')
		RETURNING id`, workstationID, userID, start,
	).Scan(&s.ID); err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE workstations
		SET status = 'occupied',
			current_session_id = $2
		WHERE id = $1`, workstationID, s.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Session, error) {
	s := &model.Session{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, workstation_id, user_id, start_time, end_time, billed_minutes, status
		FROM sessions
		WHERE id = $1`, id,
	).Scan(&s.ID, &s.WorkstationID, &s.UserID, &s.StartTime, &s.EndTime, &s.BilledMinutes, &s.Status)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) CloseAndFree(ctx context.Context, sessionID int64, end time.Time, billedMinutes int64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE sessions
		SET end_time = $2,
			billed_minutes = $3,
			status = 'ended'
		WHERE id = $1
		AND status = 'active'`, sessionID, end, billedMinutes)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNotActive
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE workstations
		SET status = 'available',
			current_session_id = NULL
		WHERE current_session_id = $1`, sessionID); err != nil {
		return err
	}
	return tx.Commit()
}
