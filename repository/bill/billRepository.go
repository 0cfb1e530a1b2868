package bill

import (
	"context"
	"database/sql"
	"encoding/json"

	"cybersphere/model"
)

type Repo interface {
	Insert(ctx context.Context, b *model.Bill) error
	Get(ctx context.Context, id int64) (*model.Bill, error)
	// MarkPaid guards on paid=false; false means the bill was already paid.
	MarkPaid(ctx context.Context, id int64, method string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Bill, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, b *model.Bill) error {
	items, err := json.Marshal(b.Items)
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO bills(session_id, user_id, amount, paid, items)
		VALUES ($1,$2,$3,FALSE,$4)
		RETURNING id, created_at`,
		b.SessionID, b.UserID, b.Amount, items,
	).Scan(&b.ID, &b.CreatedAt)
}

func scanBill(dest *model.Bill, items *[]byte, scan func(...any) error) error {
	return scan(
		&dest.ID, &dest.SessionID, &dest.UserID, &dest.Amount,
		&dest.Paid, &dest.PaymentMethod, items, &dest.CreatedAt,
	)
}

const billCols = `id, session_id, user_id, amount, paid, payment_method, items, created_at`

func (r *repo) Get(ctx context.Context, id int64) (*model.Bill, error) {
	b := &model.Bill{}
	var items []byte
	row := r.db.QueryRowContext(ctx, `
		SELECT `+billCols+`
		FROM bills
		WHERE id = $1`, id)
	if err := scanBill(b, &items, row.Scan); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &b.Items); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) MarkPaid(ctx context.Context, id int64, method string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bills
		SET paid = TRUE,
			payment_method = $2
		WHERE id = $1
		AND paid = FALSE`, id, method)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Bill, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+billCols+`
		FROM bills
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Bill
	for rows.Next() {
		var b model.Bill
		var items []byte
		if err := scanBill(&b, &items, rows.Scan); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &b.Items); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
