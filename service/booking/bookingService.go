package booking

import (
	"context"
	"database/sql"
	"errors"

	"cybersphere/events"
	"cybersphere/metrics"
	"cybersphere/model"
	brepo "cybersphere/repository/booking"
)

type ErrCode string

const (
	ErrSlotTaken    ErrCode = "SLOT_TAKEN"
	ErrBadInterval  ErrCode = "BAD_INTERVAL"
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrNotOwner     ErrCode = "NOT_OWNER"
	ErrNotConfirmed ErrCode = "NOT_CONFIRMED"
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

// ListRow = repository shape
type ListRow = brepo.ListRow

const recentLimit = 200

type Repo interface {
	InsertConfirmed(ctx context.Context, b *model.Booking) error
	Get(ctx context.Context, id int64) (*model.Booking, error)
	CancelConfirmed(ctx context.Context, id int64) (bool, error)
	ListRecent(ctx context.Context, limit int) ([]ListRow, error)
}

type Service interface {
	// Create reserves [start,end) on a workstation, conflict-checked
	// atomically against other confirmed bookings.
	Create(ctx context.Context, req model.CreateBookingReq, userID int64) (*model.Booking, error)

	// Cancel flips a confirmed booking to cancelled. Owner or staff only.
	Cancel(ctx context.Context, bookingID, actorID int64, actorRole model.Role) error

	// Recent lists the latest bookings for the staff dashboard.
	Recent(ctx context.Context) ([]ListRow, error)
}

type service struct {
	r   Repo
	hub *events.Hub
}

func New(r Repo, hub *events.Hub) Service { return &service{r: r, hub: hub} }

func (s *service) Create(ctx context.Context, req model.CreateBookingReq, userID int64) (*model.Booking, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, makeErr(ErrBadInterval)
	}

	b := &model.Booking{
		UserID:        userID,
		WorkstationID: req.WorkstationID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	}
	if err := s.r.InsertConfirmed(ctx, b); err != nil {
		switch {
		case errors.Is(err, brepo.ErrOverlap):
			return nil, makeErr(ErrSlotTaken)
		case errors.Is(err, sql.ErrNoRows):
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	s.hub.Publish(events.BookingCreated, map[string]any{"booking_id": b.ID})
	return b, nil
}

func (s *service) Cancel(ctx context.Context, bookingID, actorID int64, actorRole model.Role) error {
	b, err := s.r.Get(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	if b.UserID != actorID && !actorRole.IsStaff() {
		return makeErr(ErrNotOwner)
	}

	ok, err := s.r.CancelConfirmed(ctx, bookingID)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotConfirmed)
	}
	return nil
}

func (s *service) Recent(ctx context.Context) ([]ListRow, error) {
	return s.r.ListRecent(ctx, recentLimit)
}
