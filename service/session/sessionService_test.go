package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"cybersphere/events"
	"cybersphere/model"
	srepo "cybersphere/repository/session"
	"cybersphere/service/billing"

	"github.com/stretchr/testify/require"
)

// memRepo mirrors the workstation/session state machine in memory.
type memRepo struct {
	nextID   int64
	sessions map[int64]*model.Session
	stations map[int64]model.WorkstationStatus
}

func newMemRepo() *memRepo {
	return &memRepo{
		nextID:   1,
		sessions: map[int64]*model.Session{},
		stations: map[int64]model.WorkstationStatus{},
	}
}

func (m *memRepo) Start(ctx context.Context, workstationID, userID int64, start time.Time) (*model.Session, error) {
	status, ok := m.stations[workstationID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	switch status {
	case model.StationOccupied:
		return nil, srepo.ErrOccupied
	case model.StationMaintenance:
		return nil, srepo.ErrMaintenance
	}
	s := &model.Session{
		ID:            m.nextID,
		WorkstationID: workstationID,
		UserID:        userID,
		StartTime:     start,
		Status:        model.SessionActive,
	}
	m.nextID++
	m.sessions[s.ID] = s
	m.stations[workstationID] = model.StationOccupied
	cp := *s
	return &cp, nil
}

func (m *memRepo) Get(ctx context.Context, id int64) (*model.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (m *memRepo) CloseAndFree(ctx context.Context, sessionID int64, end time.Time, billedMinutes int64) error {
	s, ok := m.sessions[sessionID]
	if !ok || s.Status != model.SessionActive {
		return srepo.ErrNotActive
	}
	s.EndTime = &end
	s.BilledMinutes = billedMinutes
	s.Status = model.SessionEnded
	m.stations[s.WorkstationID] = model.StationAvailable
	return nil
}

type memBillRepo struct {
	nextID int64
	bills  map[int64]*model.Bill
}

func newMemBillRepo() *memBillRepo {
	return &memBillRepo{nextID: 1, bills: map[int64]*model.Bill{}}
}

func (m *memBillRepo) Insert(ctx context.Context, b *model.Bill) error {
	b.ID = m.nextID
	m.nextID++
	b.CreatedAt = time.Now()
	cp := *b
	m.bills[b.ID] = &cp
	return nil
}

func (m *memBillRepo) Get(ctx context.Context, id int64) (*model.Bill, error) {
	b, ok := m.bills[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *b
	return &cp, nil
}

func (m *memBillRepo) MarkPaid(ctx context.Context, id int64, method string) (bool, error) {
	b, ok := m.bills[id]
	if !ok || b.Paid {
		return false, nil
	}
	b.Paid = true
	b.PaymentMethod = &method
	return true, nil
}

func (m *memBillRepo) ListByUser(ctx context.Context, userID int64) ([]model.Bill, error) {
	return nil, nil
}

func newTestService(repo *memRepo) (*service, *memBillRepo) {
	br := newMemBillRepo()
	bls := billing.New(br, events.NewHub(), billing.ParseRate(billing.DefaultRate))
	svc := New(repo, bls, events.NewHub()).(*service)
	return svc, br
}

func TestBilledMinutes(t *testing.T) {
	base := time.Date(2026, time.March, 12, 10, 0, 0, 0, time.UTC)

	require.Equal(t, int64(1), BilledMinutes(base, base))
	require.Equal(t, int64(1), BilledMinutes(base, base.Add(time.Second)))
	require.Equal(t, int64(1), BilledMinutes(base, base.Add(59*time.Second)))
	require.Equal(t, int64(1), BilledMinutes(base, base.Add(time.Minute)))
	require.Equal(t, int64(2), BilledMinutes(base, base.Add(61*time.Second)))
	require.Equal(t, int64(2), BilledMinutes(base, base.Add(90*time.Second)))
	require.Equal(t, int64(60), BilledMinutes(base, base.Add(time.Hour)))
}

func TestStart_OccupiesWorkstation(t *testing.T) {
	repo := newMemRepo()
	repo.stations[1] = model.StationAvailable
	svc, _ := newTestService(repo)

	sess, err := svc.Start(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Equal(t, model.SessionActive, sess.Status)
	require.Equal(t, model.StationOccupied, repo.stations[1])

	// a second start on the same station must conflict
	_, err = svc.Start(context.Background(), 1, 6)
	require.Error(t, err)
	require.Equal(t, ErrOccupied, Code(err))
}

func TestStart_MaintenanceAndMissing(t *testing.T) {
	repo := newMemRepo()
	repo.stations[2] = model.StationMaintenance
	svc, _ := newTestService(repo)

	_, err := svc.Start(context.Background(), 2, 5)
	require.Equal(t, ErrMaintenance, Code(err))

	_, err = svc.Start(context.Background(), 99, 5)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestEnd_BillsCeilingMinutes(t *testing.T) {
	repo := newMemRepo()
	repo.stations[1] = model.StationAvailable
	svc, _ := newTestService(repo)

	start := time.Date(2026, time.March, 12, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	sess, err := svc.Start(context.Background(), 1, 5)
	require.NoError(t, err)

	// 90 seconds later: 2 billed minutes, 2 x 0.333333 rounded = 0.67
	svc.now = func() time.Time { return start.Add(90 * time.Second) }
	out, err := svc.End(context.Background(), sess.ID, 5, model.RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, int64(2), out.Session.BilledMinutes)
	require.Equal(t, model.SessionEnded, out.Session.Status)
	require.Equal(t, "0.67", out.Bill.Amount.StringFixed(2))
	require.False(t, out.Bill.Paid)

	// workstation released
	require.Equal(t, model.StationAvailable, repo.stations[1])
}

func TestEnd_ZeroDurationBillsOneMinute(t *testing.T) {
	repo := newMemRepo()
	repo.stations[1] = model.StationAvailable
	svc, _ := newTestService(repo)

	now := time.Date(2026, time.March, 12, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	sess, err := svc.Start(context.Background(), 1, 5)
	require.NoError(t, err)

	out, err := svc.End(context.Background(), sess.ID, 5, model.RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, int64(1), out.Session.BilledMinutes)
	require.Equal(t, "0.33", out.Bill.Amount.StringFixed(2))
}

func TestEnd_Permissions(t *testing.T) {
	repo := newMemRepo()
	repo.stations[1] = model.StationAvailable
	svc, _ := newTestService(repo)

	sess, err := svc.Start(context.Background(), 1, 5)
	require.NoError(t, err)

	// another customer may not end it
	_, err = svc.End(context.Background(), sess.ID, 6, model.RoleCustomer)
	require.Equal(t, ErrNotOwner, Code(err))

	// staff may
	_, err = svc.End(context.Background(), sess.ID, 6, model.RoleStaff)
	require.NoError(t, err)

	// ending twice fails
	_, err = svc.End(context.Background(), sess.ID, 5, model.RoleCustomer)
	require.Equal(t, ErrNotActive, Code(err))
}

func TestEnd_MissingSession(t *testing.T) {
	svc, _ := newTestService(newMemRepo())
	_, err := svc.End(context.Background(), 404, 5, model.RoleAdmin)
	require.Equal(t, ErrNotFound, Code(err))
}
