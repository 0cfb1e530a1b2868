package billing

import (
	"context"
	"database/sql"
	"errors"

	"cybersphere/events"
	"cybersphere/metrics"
	"cybersphere/model"

	"github.com/shopspring/decimal"
)

type ErrCode string

const (
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrAlreadyPaid ErrCode = "ALREADY_PAID"
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

// DefaultRate is the per-minute seat charge used when none is configured.
const DefaultRate = "0.333333"

const defaultMethod = "mock"

type Repo interface {
	Insert(ctx context.Context, b *model.Bill) error
	Get(ctx context.Context, id int64) (*model.Bill, error)
	MarkPaid(ctx context.Context, id int64, method string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Bill, error)
}

type Service interface {
	// CreateForSession opens an unpaid bill for a closed session. The amount
	// is minutes x rate rounded to 2 decimal places and fixed at creation.
	CreateForSession(ctx context.Context, s *model.Session) (*model.Bill, error)

	// Pay marks a bill paid exactly once; a second attempt is rejected.
	Pay(ctx context.Context, billID int64, method string) (*model.Bill, error)

	Mine(ctx context.Context, userID int64) ([]model.Bill, error)
}

type service struct {
	r    Repo
	hub  *events.Hub
	rate decimal.Decimal
}

func New(r Repo, hub *events.Hub, rate decimal.Decimal) Service {
	return &service{r: r, hub: hub, rate: rate}
}

// ParseRate reads the configured per-minute rate, falling back to the default
// on garbage input.
func ParseRate(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.RequireFromString(DefaultRate)
	}
	return d
}

func (s *service) CreateForSession(ctx context.Context, sess *model.Session) (*model.Bill, error) {
	amount := decimal.NewFromInt(sess.BilledMinutes).Mul(s.rate).Round(2)
	b := &model.Bill{
		SessionID: sess.ID,
		UserID:    sess.UserID,
		Amount:    amount,
		Items: []model.BillItem{
			{Label: "Seat charge", Qty: sess.BilledMinutes, Unit: "min"},
		},
	}
	if err := s.r.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Pay(ctx context.Context, billID int64, method string) (*model.Bill, error) {
	if method == "" {
		method = defaultMethod
	}

	if _, err := s.r.Get(ctx, billID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}

	ok, err := s.r.MarkPaid(ctx, billID, method)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrAlreadyPaid)
	}

	b, err := s.r.Get(ctx, billID)
	if err != nil {
		return nil, err
	}

	metrics.BillsPaid.Inc()
	s.hub.Publish(events.BillPaid, map[string]any{"bill_id": b.ID})
	return b, nil
}

func (s *service) Mine(ctx context.Context, userID int64) ([]model.Bill, error) {
	return s.r.ListByUser(ctx, userID)
}
