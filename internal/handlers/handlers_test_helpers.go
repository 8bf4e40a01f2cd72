package handlers

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"splittab/internal/config"
	"splittab/internal/models"
	"splittab/internal/services"
	"splittab/internal/store"
	"splittab/internal/websocket"
)

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type stubUserStore struct {
	createFn  func(ctx context.Context, name string, bankAccount, bankName *string) (models.User, error)
	listFn    func(ctx context.Context) ([]models.User, error)
	getByIDFn func(ctx context.Context, userID int64) (models.User, error)
	updateFn  func(ctx context.Context, userID int64, name string, bankAccount, bankName *string) (int64, error)
	deleteFn  func(ctx context.Context, userID int64) (int64, error)
}

func (s stubUserStore) Create(ctx context.Context, name string, bankAccount, bankName *string) (models.User, error) {
	if s.createFn == nil {
		return models.User{ID: 1, Name: name}, nil
	}
	return s.createFn(ctx, name, bankAccount, bankName)
}

func (s stubUserStore) List(ctx context.Context) ([]models.User, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubUserStore) GetByID(ctx context.Context, userID int64) (models.User, error) {
	if s.getByIDFn == nil {
		return models.User{ID: userID}, nil
	}
	return s.getByIDFn(ctx, userID)
}

func (s stubUserStore) Update(ctx context.Context, userID int64, name string, bankAccount, bankName *string) (int64, error) {
	if s.updateFn == nil {
		return 1, nil
	}
	return s.updateFn(ctx, userID, name, bankAccount, bankName)
}

func (s stubUserStore) Delete(ctx context.Context, userID int64) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, userID)
}

type stubExpenseStore struct {
	createFn        func(ctx context.Context, tx store.Tx, name string, amount decimal.Decimal, payerID int64) (int64, error)
	updateFn        func(ctx context.Context, tx store.Tx, expenseID int64, name string, amount decimal.Decimal, payerID int64) (int64, error)
	listWithPayerFn func(ctx context.Context) ([]store.ExpenseWithPayer, error)
	getByIDFn       func(ctx context.Context, expenseID int64) (models.Expense, error)
	deleteFn        func(ctx context.Context, expenseID int64) (int64, error)
}

func (s stubExpenseStore) Create(ctx context.Context, tx store.Tx, name string, amount decimal.Decimal, payerID int64) (int64, error) {
	if s.createFn == nil {
		return 1, nil
	}
	return s.createFn(ctx, tx, name, amount, payerID)
}

func (s stubExpenseStore) Update(ctx context.Context, tx store.Tx, expenseID int64, name string, amount decimal.Decimal, payerID int64) (int64, error) {
	if s.updateFn == nil {
		return 1, nil
	}
	return s.updateFn(ctx, tx, expenseID, name, amount, payerID)
}

func (s stubExpenseStore) ListWithPayer(ctx context.Context) ([]store.ExpenseWithPayer, error) {
	if s.listWithPayerFn == nil {
		return nil, nil
	}
	return s.listWithPayerFn(ctx)
}

func (s stubExpenseStore) GetByID(ctx context.Context, expenseID int64) (models.Expense, error) {
	if s.getByIDFn == nil {
		return models.Expense{ID: expenseID}, nil
	}
	return s.getByIDFn(ctx, expenseID)
}

func (s stubExpenseStore) Delete(ctx context.Context, expenseID int64) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, expenseID)
}

type stubParticipantStore struct {
	listByExpenseFn func(ctx context.Context, expenseID int64) ([]models.Participant, error)
	replaceFn       func(ctx context.Context, tx store.Execer, expenseID int64, shares []models.Participant) error
}

func (s stubParticipantStore) ListByExpense(ctx context.Context, expenseID int64) ([]models.Participant, error) {
	if s.listByExpenseFn == nil {
		return nil, nil
	}
	return s.listByExpenseFn(ctx, expenseID)
}

func (s stubParticipantStore) Replace(ctx context.Context, tx store.Execer, expenseID int64, shares []models.Participant) error {
	if s.replaceFn == nil {
		return nil
	}
	return s.replaceFn(ctx, tx, expenseID, shares)
}

type stubSummaryService struct {
	globalFn             func(ctx context.Context) (services.GlobalSummary, error)
	expenseFn            func(ctx context.Context, expenseID int64) (services.ExpenseSummary, error)
	expensesWithStatusFn func(ctx context.Context) ([]services.ExpenseStatus, error)
	setPaymentStatusFn   func(ctx context.Context, transactionID string, paid bool) (models.PaymentStatus, error)
}

func (s stubSummaryService) Global(ctx context.Context) (services.GlobalSummary, error) {
	if s.globalFn == nil {
		return services.GlobalSummary{}, nil
	}
	return s.globalFn(ctx)
}

func (s stubSummaryService) Expense(ctx context.Context, expenseID int64) (services.ExpenseSummary, error) {
	if s.expenseFn == nil {
		return services.ExpenseSummary{}, nil
	}
	return s.expenseFn(ctx, expenseID)
}

func (s stubSummaryService) ExpensesWithStatus(ctx context.Context) ([]services.ExpenseStatus, error) {
	if s.expensesWithStatusFn == nil {
		return nil, nil
	}
	return s.expensesWithStatusFn(ctx)
}

func (s stubSummaryService) SetPaymentStatus(ctx context.Context, transactionID string, paid bool) (models.PaymentStatus, error) {
	if s.setPaymentStatusFn == nil {
		return models.PaymentStatus{TransactionID: transactionID, Paid: paid}, nil
	}
	return s.setPaymentStatusFn(ctx, transactionID, paid)
}

func newTestHandler(users UserStore, expenses ExpenseStore, participants ParticipantStore, summary SummaryService) *Handler {
	return New(config.Config{AllowedOrigins: "*"}, fakeTxRunner{}, users, expenses, participants, summary, websocket.NewHub())
}
