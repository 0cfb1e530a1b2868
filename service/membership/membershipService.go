package membership

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cybersphere/model"
)

type ErrCode string

const (
	ErrInvalidPlan ErrCode = "INVALID_PLAN"
	ErrNotFound    ErrCode = "NOT_FOUND"
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

const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"

	// loyaltyBonus is credited on every subscribe call, uncapped.
	loyaltyBonus = 100
)

type Repo interface {
	Subscribe(ctx context.Context, userID int64, plan string, expiresAt time.Time, bonusPoints int64) (*model.User, error)
}

type Service interface {
	Subscribe(ctx context.Context, userID int64, plan string) (*model.User, error)
}

type service struct {
	r   Repo
	now func() time.Time
}

func New(r Repo) Service { return &service{r: r, now: time.Now} }

// Expiry computes the plan expiry from a start date. AddDate normalizes month
// overflow (Jan 31 + 1 month = Mar 2/3), matching the original behavior.
func Expiry(plan string, from time.Time) (time.Time, bool) {
	switch plan {
	case PlanMonthly:
		return from.AddDate(0, 1, 0), true
	case PlanYearly:
		return from.AddDate(1, 0, 0), true
	}
	return time.Time{}, false
}

func (s *service) Subscribe(ctx context.Context, userID int64, plan string) (*model.User, error) {
	expires, ok := Expiry(plan, s.now().UTC())
	if !ok {
		return nil, makeErr(ErrInvalidPlan)
	}

	u, err := s.r.Subscribe(ctx, userID, plan, expires, loyaltyBonus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}
