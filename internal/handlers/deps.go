package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"splittab/internal/models"
	"splittab/internal/services"
	"splittab/internal/store"
)

type UserStore interface {
	Create(ctx context.Context, name string, bankAccount, bankName *string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, userID int64) (models.User, error)
	Update(ctx context.Context, userID int64, name string, bankAccount, bankName *string) (int64, error)
	Delete(ctx context.Context, userID int64) (int64, error)
}

type ExpenseStore interface {
	Create(ctx context.Context, tx store.Tx, name string, amount decimal.Decimal, payerID int64) (int64, error)
	Update(ctx context.Context, tx store.Tx, expenseID int64, name string, amount decimal.Decimal, payerID int64) (int64, error)
	ListWithPayer(ctx context.Context) ([]store.ExpenseWithPayer, error)
	GetByID(ctx context.Context, expenseID int64) (models.Expense, error)
	Delete(ctx context.Context, expenseID int64) (int64, error)
}

type ParticipantStore interface {
	ListByExpense(ctx context.Context, expenseID int64) ([]models.Participant, error)
	Replace(ctx context.Context, tx store.Execer, expenseID int64, shares []models.Participant) error
}

type SummaryService interface {
	Global(ctx context.Context) (services.GlobalSummary, error)
	Expense(ctx context.Context, expenseID int64) (services.ExpenseSummary, error)
	ExpensesWithStatus(ctx context.Context) ([]services.ExpenseStatus, error)
	SetPaymentStatus(ctx context.Context, transactionID string, paid bool) (models.PaymentStatus, error)
}
