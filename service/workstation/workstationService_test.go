package workstation

import (
	"context"
	"database/sql"
	"testing"

	"cybersphere/model"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	nextID   int64
	stations map[int64]*model.Workstation
}

func newMockRepo() *mockRepo {
	return &mockRepo{nextID: 1, stations: map[int64]*model.Workstation{}}
}

func (m *mockRepo) add(status model.WorkstationStatus) int64 {
	id := m.nextID
	m.nextID++
	m.stations[id] = &model.Workstation{ID: id, Name: "WS", Status: status}
	return id
}

func (m *mockRepo) List(ctx context.Context) ([]model.Workstation, error) {
	var out []model.Workstation
	for _, w := range m.stations {
		out = append(out, *w)
	}
	return out, nil
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.Workstation, error) {
	w, ok := m.stations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *w
	return &cp, nil
}

func (m *mockRepo) Create(ctx context.Context, name string) (*model.Workstation, error) {
	id := m.add(model.StationAvailable)
	m.stations[id].Name = name
	cp := *m.stations[id]
	return &cp, nil
}

func (m *mockRepo) SetStatusIfNotOccupied(ctx context.Context, id int64, status model.WorkstationStatus) (bool, error) {
	w, ok := m.stations[id]
	if !ok || w.Status == model.StationOccupied {
		return false, nil
	}
	w.Status = status
	return true, nil
}

func TestCreate_RequiresName(t *testing.T) {
	svc := New(newMockRepo())
	_, err := svc.Create(context.Background(), "   ")
	require.Equal(t, ErrBadInput, Code(err))

	w, err := svc.Create(context.Background(), "Seat A1")
	require.NoError(t, err)
	require.Equal(t, "Seat A1", w.Name)
	require.Equal(t, model.StationAvailable, w.Status)
}

func TestSetMaintenance(t *testing.T) {
	repo := newMockRepo()
	id := repo.add(model.StationAvailable)
	svc := New(repo)
	ctx := context.Background()

	require.NoError(t, svc.SetMaintenance(ctx, id, true))
	require.Equal(t, model.StationMaintenance, repo.stations[id].Status)

	require.NoError(t, svc.SetMaintenance(ctx, id, false))
	require.Equal(t, model.StationAvailable, repo.stations[id].Status)
}

func TestSetMaintenance_OccupiedRejected(t *testing.T) {
	repo := newMockRepo()
	id := repo.add(model.StationOccupied)
	svc := New(repo)

	err := svc.SetMaintenance(context.Background(), id, true)
	require.Equal(t, ErrOccupied, Code(err))
}

func TestSetMaintenance_NotFound(t *testing.T) {
	svc := New(newMockRepo())
	err := svc.SetMaintenance(context.Background(), 404, true)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestGet(t *testing.T) {
	repo := newMockRepo()
	id := repo.add(model.StationAvailable)
	svc := New(repo)

	w, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, w.ID)

	_, err = svc.Get(context.Background(), 404)
	require.Equal(t, ErrNotFound, Code(err))
}
