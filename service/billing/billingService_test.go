// service/billing/billing_service_test.go
package billing_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"cybersphere/events"
	"cybersphere/model"
	"cybersphere/service/billing"
)

type repoMock struct {
	nextID int64
	bills  map[int64]*model.Bill
}

func newRepoMock() *repoMock {
	return &repoMock{nextID: 1, bills: map[int64]*model.Bill{}}
}

func (m *repoMock) Insert(ctx context.Context, b *model.Bill) error {
	b.ID = m.nextID
	m.nextID++
	b.CreatedAt = time.Now()
	cp := *b
	m.bills[b.ID] = &cp
	return nil
}

func (m *repoMock) Get(ctx context.Context, id int64) (*model.Bill, error) {
	b, ok := m.bills[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *b
	return &cp, nil
}

func (m *repoMock) MarkPaid(ctx context.Context, id int64, method string) (bool, error) {
	b, ok := m.bills[id]
	if !ok || b.Paid {
		return false, nil
	}
	b.Paid = true
	b.PaymentMethod = &method
	return true, nil
}

func (m *repoMock) ListByUser(ctx context.Context, userID int64) ([]model.Bill, error) {
	var out []model.Bill
	for _, b := range m.bills {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func closedSession(minutes int64) *model.Session {
	end := time.Now()
	return &model.Session{
		ID:            3,
		WorkstationID: 1,
		UserID:        5,
		EndTime:       &end,
		BilledMinutes: minutes,
		Status:        model.SessionEnded,
	}
}

func TestCreateForSession_AmountFixedAtTwoDecimals(t *testing.T) {
	svc := billing.New(newRepoMock(), events.NewHub(), billing.ParseRate(billing.DefaultRate))

	b, err := svc.CreateForSession(context.Background(), closedSession(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := b.Amount.StringFixed(2); got != "0.67" {
		t.Fatalf("amount = %s; want 0.67", got)
	}
	if b.Paid {
		t.Fatal("new bill must start unpaid")
	}
	if len(b.Items) != 1 || b.Items[0].Qty != 2 || b.Items[0].Unit != "min" {
		t.Fatalf("unexpected items: %+v", b.Items)
	}
}

func TestCreateForSession_LongSession(t *testing.T) {
	svc := billing.New(newRepoMock(), events.NewHub(), billing.ParseRate(billing.DefaultRate))

	// 120 min x 0.333333 = 39.99996 -> 40.00
	b, err := svc.CreateForSession(context.Background(), closedSession(120))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := b.Amount.StringFixed(2); got != "40.00" {
		t.Fatalf("amount = %s; want 40.00", got)
	}
}

func TestPay(t *testing.T) {
	repo := newRepoMock()
	hub := events.NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	svc := billing.New(repo, hub, billing.ParseRate(billing.DefaultRate))
	b, err := svc.CreateForSession(context.Background(), closedSession(5))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	paid, err := svc.Pay(context.Background(), b.ID, "card")
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if !paid.Paid || paid.PaymentMethod == nil || *paid.PaymentMethod != "card" {
		t.Fatalf("bill not marked paid: %+v", paid)
	}

	ev := <-ch
	if ev.Name != events.BillPaid {
		t.Fatalf("event = %s; want %s", ev.Name, events.BillPaid)
	}
}

func TestPay_AlreadyPaidRejected(t *testing.T) {
	repo := newRepoMock()
	svc := billing.New(repo, events.NewHub(), billing.ParseRate(billing.DefaultRate))
	b, _ := svc.CreateForSession(context.Background(), closedSession(5))

	if _, err := svc.Pay(context.Background(), b.ID, ""); err != nil {
		t.Fatalf("first pay: %v", err)
	}
	_, err := svc.Pay(context.Background(), b.ID, "cash")
	if billing.Code(err) != billing.ErrAlreadyPaid {
		t.Fatalf("code = %q; want ALREADY_PAID", billing.Code(err))
	}
}

func TestPay_DefaultsMethodToMock(t *testing.T) {
	repo := newRepoMock()
	svc := billing.New(repo, events.NewHub(), billing.ParseRate(billing.DefaultRate))
	b, _ := svc.CreateForSession(context.Background(), closedSession(1))

	paid, err := svc.Pay(context.Background(), b.ID, "")
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.PaymentMethod == nil || *paid.PaymentMethod != "mock" {
		t.Fatalf("method = %v; want mock", paid.PaymentMethod)
	}
}

func TestPay_NotFound(t *testing.T) {
	svc := billing.New(newRepoMock(), events.NewHub(), billing.ParseRate(billing.DefaultRate))
	_, err := svc.Pay(context.Background(), 404, "cash")
	if billing.Code(err) != billing.ErrNotFound {
		t.Fatalf("code = %q; want NOT_FOUND", billing.Code(err))
	}
}

func TestParseRate_FallsBackOnGarbage(t *testing.T) {
	if billing.ParseRate("not-a-number").String() != billing.ParseRate(billing.DefaultRate).String() {
		t.Fatal("garbage rate must fall back to default")
	}
	if billing.ParseRate("-1").String() != billing.ParseRate(billing.DefaultRate).String() {
		t.Fatal("negative rate must fall back to default")
	}
}
