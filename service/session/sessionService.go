package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cybersphere/events"
	"cybersphere/metrics"
	"cybersphere/model"
	srepo "cybersphere/repository/session"
	"cybersphere/service/billing"
)

type ErrCode string

const (
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrOccupied    ErrCode = "OCCUPIED"
	ErrMaintenance ErrCode = "UNDER_MAINTENANCE"
	ErrNotOwner    ErrCode = "NOT_OWNER"
	ErrNotActive   ErrCode = "NOT_ACTIVE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Start(ctx context.Context, workstationID, userID int64, start time.Time) (*model.Session, error)
	Get(ctx context.Context, id int64) (*model.Session, error)
	CloseAndFree(ctx context.Context, sessionID int64, end time.Time, billedMinutes int64) error
}

type Ended struct {
	Session *model.Session `json:"session"`
	Bill    *model.Bill    `json:"bill"`
}

type Service interface {
	// Start occupies a free workstation with a new active session.
	Start(ctx context.Context, workstationID, userID int64) (*model.Session, error)

	// End closes an active session (owner or staff), bills the elapsed
	// minutes and frees the workstation.
	End(ctx context.Context, sessionID, actorID int64, actorRole model.Role) (*Ended, error)
}

type service struct {
	r       Repo
	billing billing.Service
	hub     *events.Hub
	now     func() time.Time
}

func New(r Repo, b billing.Service, hub *events.Hub) Service {
	return &service{r: r, billing: b, hub: hub, now: time.Now}
}

// BilledMinutes charges whole minutes, rounding up, with a 1 minute floor so
// zero-length sessions still bill.
func BilledMinutes(start, end time.Time) int64 {
	secs := int64(end.Sub(start) / time.Second)
	if secs <= 0 {
		return 1
	}
	mins := (secs + 59) / 60
	if mins < 1 {
		return 1
	}
	return mins
}

func (s *service) Start(ctx context.Context, workstationID, userID int64) (*model.Session, error) {
	sess, err := s.r.Start(ctx, workstationID, userID, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, srepo.ErrOccupied):
			return nil, makeErr(ErrOccupied)
		case errors.Is(err, srepo.ErrMaintenance):
			return nil, makeErr(ErrMaintenance)
		case errors.Is(err, sql.ErrNoRows):
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}

	metrics.SessionsStarted.Inc()
	metrics.ActiveSessions.Inc()
	s.hub.Publish(events.SessionStarted, map[string]any{
		"session_id":     sess.ID,
		"workstation_id": sess.WorkstationID,
		"user_id":        sess.UserID,
	})
	return sess, nil
}

func (s *service) End(ctx context.Context, sessionID, actorID int64, actorRole model.Role) (*Ended, error) {
	sess, err := s.r.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if sess.UserID != actorID && !actorRole.IsStaff() {
		return nil, makeErr(ErrNotOwner)
	}
	if sess.Status != model.SessionActive {
		return nil, makeErr(ErrNotActive)
	}

	end := s.now().UTC()
	mins := BilledMinutes(sess.StartTime, end)

	if err := s.r.CloseAndFree(ctx, sessionID, end, mins); err != nil {
		if errors.Is(err, srepo.ErrNotActive) {
			return nil, makeErr(ErrNotActive)
		}
		return nil, err
	}
	sess.EndTime = &end
	sess.BilledMinutes = mins
	sess.Status = model.SessionEnded

	bill, err := s.billing.CreateForSession(ctx, sess)
	if err != nil {
		return nil, err
	}

	metrics.SessionsEnded.Inc()
	metrics.ActiveSessions.Dec()
	s.hub.Publish(events.SessionEnded, map[string]any{
		"session_id": sess.ID,
		"bill_id":    bill.ID,
		"amount":     bill.Amount,
	})
	return &Ended{Session: sess, Bill: bill}, nil
}
