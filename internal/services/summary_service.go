package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"splittab/internal/ledger"
	"splittab/internal/models"
	"splittab/internal/money"
	"splittab/internal/store"
	"splittab/internal/websocket"
)

var (
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrInvalidTransactionID = errors.New("invalid transaction id")
)

// Stored paid_at timestamps are normalized to a fixed UTC+7 offset.
var paidAtZone = time.FixedZone("UTC+7", 7*60*60)

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
}

type ExpenseStore interface {
	List(ctx context.Context) ([]models.Expense, error)
	ListWithPayer(ctx context.Context) ([]store.ExpenseWithPayer, error)
	GetByID(ctx context.Context, expenseID int64) (models.Expense, error)
}

type ParticipantStore interface {
	ListAll(ctx context.Context) ([]models.Participant, error)
	ListByExpense(ctx context.Context, expenseID int64) ([]models.Participant, error)
}

type PaymentStore interface {
	GetByTransactionID(ctx context.Context, transactionID string) (models.PaymentStatus, bool, error)
	Upsert(ctx context.Context, transactionID string, paid bool, paidAt *time.Time) (models.PaymentStatus, error)
}

type StatusHub interface {
	BroadcastStatus(update websocket.StatusUpdate)
}

// SummaryService composes the ledger, the settlement planner and the
// persisted payment statuses into the public summary views. Every call
// works on a fresh snapshot; nothing is cached between requests.
type SummaryService struct {
	users        UserStore
	expenses     ExpenseStore
	participants ParticipantStore
	payments     PaymentStore
	hub          StatusHub
}

func NewSummaryService(users UserStore, expenses ExpenseStore, participants ParticipantStore, payments PaymentStore, hub StatusHub) *SummaryService {
	return &SummaryService{
		users:        users,
		expenses:     expenses,
		participants: participants,
		payments:     payments,
		hub:          hub,
	}
}

type UserSummary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Paid        float64 `json:"paid"`
	Spent       float64 `json:"spent"`
	Balance     float64 `json:"balance"`
	Received    float64 `json:"received"`
	Pending     float64 `json:"pending"`
	BankAccount *string `json:"bank_account,omitempty"`
	BankName    *string `json:"bank_name,omitempty"`
}

type Transaction struct {
	TransactionID   string               `json:"transaction_id"`
	From            int64                `json:"from"`
	FromName        string               `json:"fromName"`
	To              int64                `json:"to"`
	ToName          string               `json:"toName"`
	ToBankAccount   *string              `json:"toBankAccount,omitempty"`
	ToBankName      *string              `json:"toBankName,omitempty"`
	Amount          float64              `json:"amount"`
	RelatedExpenses []string             `json:"relatedExpenses,omitempty"`
	PaymentStatus   models.PaymentStatus `json:"payment_status"`
}

type GlobalSummary struct {
	UserSummary  []UserSummary `json:"userSummary"`
	Transactions []Transaction `json:"transactions"`
}

// Global builds the cross-user view: every user's aggregate plus the
// netted settlement transactions under "overall" identifiers, each
// annotated with its persisted status.
func (s *SummaryService) Global(ctx context.Context) (GlobalSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return GlobalSummary{}, err
	}
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return GlobalSummary{}, err
	}
	shares, err := s.participants.ListAll(ctx)
	if err != nil {
		return GlobalSummary{}, err
	}

	led := ledger.Build(users, expenses, shares)
	planned := led.Plan()

	received := make(map[int64]decimal.Decimal)
	pending := make(map[int64]decimal.Decimal)
	transactions := make([]Transaction, 0, len(planned))
	for _, tx := range planned {
		id := ledger.OverallTransactionID(tx.From, tx.To)
		status, err := s.statusOrDefault(ctx, id)
		if err != nil {
			return GlobalSummary{}, err
		}
		if status.Paid {
			received[tx.To] = received[tx.To].Add(tx.Amount)
		} else {
			pending[tx.To] = pending[tx.To].Add(tx.Amount)
		}
		transactions = append(transactions, Transaction{
			TransactionID:   id,
			From:            tx.From,
			FromName:        tx.FromName,
			To:              tx.To,
			ToName:          tx.ToName,
			ToBankAccount:   tx.ToBankAccount,
			ToBankName:      tx.ToBankName,
			Amount:          money.Float(tx.Amount),
			RelatedExpenses: tx.RelatedExpenses,
			PaymentStatus:   status,
		})
	}

	aggregates := led.Aggregates()
	summaries := make([]UserSummary, 0, len(aggregates))
	for _, agg := range aggregates {
		summaries = append(summaries, UserSummary{
			ID:          agg.UserID,
			Name:        agg.Name,
			Paid:        money.Float(agg.Paid),
			Spent:       money.Float(agg.Spent),
			Balance:     money.Float(agg.Balance),
			Received:    money.Float(received[agg.UserID]),
			Pending:     money.Float(pending[agg.UserID]),
			BankAccount: agg.BankAccount,
			BankName:    agg.BankName,
		})
	}
	return GlobalSummary{UserSummary: summaries, Transactions: transactions}, nil
}

type ExpenseDetail struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	PayerID   int64     `json:"payer_id"`
	PayerName string    `json:"payer_name"`
	CreatedAt time.Time `json:"created_at"`
}

type ExpenseSummary struct {
	Expense      ExpenseDetail `json:"expense"`
	Transactions []Transaction `json:"transactions"`
	AllCompleted bool          `json:"allCompleted"`
}

// Expense builds the single-expense view: the literal pairwise obligation
// of every non-payer participant toward the payer, under per-expense
// identifiers. No netting happens here; the global view and this one use
// different transaction sets on purpose.
func (s *SummaryService) Expense(ctx context.Context, expenseID int64) (ExpenseSummary, error) {
	expense, err := s.expenses.GetByID(ctx, expenseID)
	if errors.Is(err, sql.ErrNoRows) {
		return ExpenseSummary{}, ErrExpenseNotFound
	}
	if err != nil {
		return ExpenseSummary{}, err
	}
	shares, err := s.participants.ListByExpense(ctx, expenseID)
	if err != nil {
		return ExpenseSummary{}, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return ExpenseSummary{}, err
	}
	byID := make(map[int64]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	payer := byID[expense.PayerID]
	transactions := make([]Transaction, 0, len(shares))
	allCompleted := true
	for _, share := range shares {
		if share.UserID == expense.PayerID {
			continue
		}
		id := ledger.ExpenseTransactionID(expense.ID, share.UserID, expense.PayerID)
		status, err := s.statusOrDefault(ctx, id)
		if err != nil {
			return ExpenseSummary{}, err
		}
		if !status.Paid {
			allCompleted = false
		}
		transactions = append(transactions, Transaction{
			TransactionID: id,
			From:          share.UserID,
			FromName:      byID[share.UserID].Name,
			To:            expense.PayerID,
			ToName:        payer.Name,
			ToBankAccount: payer.BankAccount,
			ToBankName:    payer.BankName,
			Amount:        money.Float(share.Amount),
			PaymentStatus: status,
		})
	}
	if len(transactions) == 0 {
		allCompleted = false
	}
	return ExpenseSummary{
		Expense: ExpenseDetail{
			ID:        expense.ID,
			Name:      expense.Name,
			Amount:    money.Float(expense.Amount),
			PayerID:   expense.PayerID,
			PayerName: payer.Name,
			CreatedAt: expense.CreatedAt,
		},
		Transactions: transactions,
		AllCompleted: allCompleted,
	}, nil
}

type ExpenseStatus struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Amount               float64   `json:"amount"`
	PayerID              int64     `json:"payer_id"`
	PayerName            string    `json:"payer_name"`
	CreatedAt            time.Time `json:"created_at"`
	PaymentCount         int       `json:"payment_count"`
	CompletedCount       int       `json:"completed_count"`
	AllPaymentsCompleted bool      `json:"all_payments_completed"`
	ParticipantsCount    int       `json:"participants_count"`
}

// ExpensesWithStatus builds the list-view badges: per expense, how many
// payments it requires (participants excluding the payer) and how many of
// those are marked paid.
func (s *SummaryService) ExpensesWithStatus(ctx context.Context) ([]ExpenseStatus, error) {
	expenses, err := s.expenses.ListWithPayer(ctx)
	if err != nil {
		return nil, err
	}
	shares, err := s.participants.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byExpense := make(map[int64][]models.Participant, len(expenses))
	for _, share := range shares {
		byExpense[share.ExpenseID] = append(byExpense[share.ExpenseID], share)
	}

	out := make([]ExpenseStatus, 0, len(expenses))
	for _, expense := range expenses {
		expenseShares := byExpense[expense.ID]
		paymentCount := 0
		completedCount := 0
		for _, share := range expenseShares {
			if share.UserID == expense.PayerID {
				continue
			}
			paymentCount++
			id := ledger.ExpenseTransactionID(expense.ID, share.UserID, expense.PayerID)
			status, err := s.statusOrDefault(ctx, id)
			if err != nil {
				return nil, err
			}
			if status.Paid {
				completedCount++
			}
		}
		out = append(out, ExpenseStatus{
			ID:                   expense.ID,
			Name:                 expense.Name,
			Amount:               money.Float(expense.Amount),
			PayerID:              expense.PayerID,
			PayerName:            expense.PayerName,
			CreatedAt:            expense.CreatedAt,
			PaymentCount:         paymentCount,
			CompletedCount:       completedCount,
			AllPaymentsCompleted: paymentCount > 0 && completedCount == paymentCount,
			ParticipantsCount:    len(expenseShares),
		})
	}
	return out, nil
}

// SetPaymentStatus upserts the paid flag for a transaction id and pushes
// the change to connected clients. Calling it twice with the same value
// is a no-op beyond bumping updated_at; last write wins on races.
func (s *SummaryService) SetPaymentStatus(ctx context.Context, transactionID string, paid bool) (models.PaymentStatus, error) {
	if strings.TrimSpace(transactionID) == "" {
		return models.PaymentStatus{}, ErrInvalidTransactionID
	}
	var paidAt *time.Time
	if paid {
		now := time.Now().In(paidAtZone)
		paidAt = &now
	}
	status, err := s.payments.Upsert(ctx, transactionID, paid, paidAt)
	if err != nil {
		return models.PaymentStatus{}, err
	}
	s.hub.BroadcastStatus(websocket.StatusUpdate{
		TransactionID: status.TransactionID,
		Paid:          status.Paid,
		PaidAt:        status.PaidAt,
	})
	return status, nil
}

// statusOrDefault synthesizes the unpaid default for ids never stored;
// an absent record is not an error.
func (s *SummaryService) statusOrDefault(ctx context.Context, transactionID string) (models.PaymentStatus, error) {
	status, found, err := s.payments.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return models.PaymentStatus{}, err
	}
	if !found {
		return models.PaymentStatus{TransactionID: transactionID, Paid: false, PaidAt: nil}, nil
	}
	return status, nil
}
