package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	BankAccount *string   `db:"bank_account" json:"bank_account,omitempty"`
	BankName    *string   `db:"bank_name" json:"bank_name,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Expense struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	PayerID   int64           `db:"payer_id" json:"payer_id"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Participant is one user's share of one expense. Shares of an expense
// need not sum to the expense amount; the ledger takes them as given.
type Participant struct {
	ExpenseID int64           `db:"expense_id" json:"expense_id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
}

// PaymentStatus is the persisted paid flag for one derived transaction,
// keyed by the deterministic transaction identifier. Derived transactions
// themselves are recomputed per request and never stored.
type PaymentStatus struct {
	ID            string     `db:"id" json:"-"`
	TransactionID string     `db:"transaction_id" json:"transaction_id"`
	Paid          bool       `db:"paid" json:"paid"`
	PaidAt        *time.Time `db:"paid_at" json:"paid_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
