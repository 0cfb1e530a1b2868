package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillItem struct {
	Label string `json:"label"`
	Qty   int64  `json:"qty"`
	Unit  string `json:"unit"`
}

type Bill struct {
	ID            int64           `json:"id"`
	SessionID     int64           `json:"session_id"`
	UserID        int64           `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Paid          bool            `json:"paid"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	Items         []BillItem      `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}

type PayBillReq struct {
	BillID        int64  `json:"bill_id" validate:"required,gt=0"`
	PaymentMethod string `json:"payment_method"`
}
