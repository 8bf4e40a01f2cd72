// Package ledger derives per-user balances from expenses and participant
// shares, and turns those balances into a minimal set of settling
// transactions. Everything here is recomputed per request from a fresh
// snapshot; nothing is persisted.
package ledger

import (
	"github.com/shopspring/decimal"

	"splittab/internal/models"
)

// Aggregate is the derived per-user ledger entry. Balance is kept
// unrounded; callers round at serialization.
type Aggregate struct {
	UserID      int64
	Name        string
	BankAccount *string
	BankName    *string
	Paid        decimal.Decimal
	Spent       decimal.Decimal
	Balance     decimal.Decimal
}

// Ledger holds the request-scoped aggregates plus the indexes the planner
// needs: which expenses each user participates in, and each expense by id.
type Ledger struct {
	aggregates   map[int64]*Aggregate
	userOrder    []int64
	expenses     map[int64]models.Expense
	expenseOrder []int64
	participated map[int64]map[int64]struct{}
}

// Build folds users, expenses and shares into a Ledger. Every known user
// gets an aggregate, including users with no activity. A payer or share
// referencing an unknown user id is skipped, not an error.
func Build(users []models.User, expenses []models.Expense, shares []models.Participant) *Ledger {
	l := &Ledger{
		aggregates:   make(map[int64]*Aggregate, len(users)),
		userOrder:    make([]int64, 0, len(users)),
		expenses:     make(map[int64]models.Expense, len(expenses)),
		expenseOrder: make([]int64, 0, len(expenses)),
		participated: make(map[int64]map[int64]struct{}),
	}
	for _, user := range users {
		l.aggregates[user.ID] = &Aggregate{
			UserID:      user.ID,
			Name:        user.Name,
			BankAccount: user.BankAccount,
			BankName:    user.BankName,
		}
		l.userOrder = append(l.userOrder, user.ID)
	}
	for _, expense := range expenses {
		l.expenses[expense.ID] = expense
		l.expenseOrder = append(l.expenseOrder, expense.ID)
		if payer, ok := l.aggregates[expense.PayerID]; ok {
			payer.Paid = payer.Paid.Add(expense.Amount)
		}
	}
	for _, share := range shares {
		agg, ok := l.aggregates[share.UserID]
		if !ok {
			continue
		}
		agg.Spent = agg.Spent.Add(share.Amount)
		if l.participated[share.UserID] == nil {
			l.participated[share.UserID] = make(map[int64]struct{})
		}
		l.participated[share.UserID][share.ExpenseID] = struct{}{}
	}
	for _, agg := range l.aggregates {
		agg.Balance = agg.Paid.Sub(agg.Spent)
	}
	return l
}

// Aggregates returns the per-user entries in user listing order.
func (l *Ledger) Aggregates() []Aggregate {
	out := make([]Aggregate, 0, len(l.userOrder))
	for _, id := range l.userOrder {
		out = append(out, *l.aggregates[id])
	}
	return out
}

// relatedExpenses lists, in expense creation order, the names of expenses
// the debtor participates in and the creditor paid for.
func (l *Ledger) relatedExpenses(debtorID, creditorID int64) []string {
	participated := l.participated[debtorID]
	if len(participated) == 0 {
		return nil
	}
	var names []string
	for _, expenseID := range l.expenseOrder {
		if _, ok := participated[expenseID]; !ok {
			continue
		}
		if l.expenses[expenseID].PayerID == creditorID {
			names = append(names, l.expenses[expenseID].Name)
		}
	}
	return names
}
