package workstation

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cybersphere/model"
)

type ErrCode string

const (
	ErrBadInput ErrCode = "BAD_INPUT"
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrOccupied ErrCode = "OCCUPIED"
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
	List(ctx context.Context) ([]model.Workstation, error)
	ByID(ctx context.Context, id int64) (*model.Workstation, error)
	Create(ctx context.Context, name string) (*model.Workstation, error)
	SetStatusIfNotOccupied(ctx context.Context, id int64, status model.WorkstationStatus) (bool, error)
}

type Service interface {
	List(ctx context.Context) ([]model.Workstation, error)
	Get(ctx context.Context, id int64) (*model.Workstation, error)
	Create(ctx context.Context, name string) (*model.Workstation, error)
	// SetMaintenance flips a station between available and maintenance; an
	// occupied station must end its session first.
	SetMaintenance(ctx context.Context, id int64, on bool) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.Workstation, error) {
	return s.r.List(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Workstation, error) {
	w, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return w, nil
}

func (s *service) Create(ctx context.Context, name string) (*model.Workstation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, makeErr(ErrBadInput)
	}
	return s.r.Create(ctx, name)
}

func (s *service) SetMaintenance(ctx context.Context, id int64, on bool) error {
	w, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	if w.Status == model.StationOccupied {
		return makeErr(ErrOccupied)
	}

	target := model.StationAvailable
	if on {
		target = model.StationMaintenance
	}
	ok, err := s.r.SetStatusIfNotOccupied(ctx, id, target)
	if err != nil {
		return err
	}
	if !ok {
		// lost the race to a session start
		return makeErr(ErrOccupied)
	}
	return nil
}
