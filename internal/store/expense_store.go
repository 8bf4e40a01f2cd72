package store

import (
	"context"

	"github.com/shopspring/decimal"

	"splittab/internal/models"
)

type ExpenseStore struct {
	db DB
}

func NewExpenseStore(db DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

// ExpenseWithPayer joins the payer name for list views.
type ExpenseWithPayer struct {
	models.Expense
	PayerName string `db:"payer_name"`
}

func (s *ExpenseStore) Create(ctx context.Context, tx Tx, name string, amount decimal.Decimal, payerID int64) (int64, error) {
	var id int64
	err := tx.GetContext(ctx, &id, `
		INSERT INTO expenses (name, amount, payer_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, amount, payerID)
	return id, err
}

func (s *ExpenseStore) Update(ctx context.Context, tx Tx, expenseID int64, name string, amount decimal.Decimal, payerID int64) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE expenses
		SET name = $1, amount = $2, payer_id = $3
		WHERE id = $4
	`, name, amount, payerID, expenseID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *ExpenseStore) List(ctx context.Context) ([]models.Expense, error) {
	var rows []models.Expense
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, amount, payer_id, created_at
		FROM expenses
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ExpenseStore) ListWithPayer(ctx context.Context) ([]ExpenseWithPayer, error) {
	var rows []ExpenseWithPayer
	err := s.db.SelectContext(ctx, &rows, `
		SELECT e.id, e.name, e.amount, e.payer_id, e.created_at,
		       COALESCE(u.name, '') AS payer_name
		FROM expenses e
		LEFT JOIN users u ON u.id = e.payer_id
		ORDER BY e.id
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ExpenseStore) GetByID(ctx context.Context, expenseID int64) (models.Expense, error) {
	var row models.Expense
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, amount, payer_id, created_at
		FROM expenses
		WHERE id = $1
	`, expenseID)
	if err != nil {
		return models.Expense{}, err
	}
	return row, nil
}

func (s *ExpenseStore) Delete(ctx context.Context, expenseID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, expenseID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
