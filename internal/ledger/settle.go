package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// tolerance is the zero threshold for balances: anything within 0.01 of
// zero is considered settled. Matching the stored-status identifiers
// across recomputations depends on this exact value.
var tolerance = decimal.New(1, -2)

// Transaction is a suggested settling payment. Amount is always positive.
type Transaction struct {
	From            int64
	FromName        string
	To              int64
	ToName          string
	ToBankAccount   *string
	ToBankName      *string
	Amount          decimal.Decimal
	RelatedExpenses []string
}

type side struct {
	id      int64
	balance decimal.Decimal
}

// Plan produces the minimal set of transactions that drives every balance
// to within tolerance of zero, via greedy two-pointer matching: the most
// negative debtor pays the most positive creditor, for the smaller of the
// two magnitudes, until one side is exhausted. Sorting is stable so equal
// balances keep user listing order, which keeps the output deterministic.
func (l *Ledger) Plan() []Transaction {
	var debtors, creditors []side
	for _, id := range l.userOrder {
		balance := l.aggregates[id].Balance
		if balance.Abs().LessThan(tolerance) {
			continue
		}
		if balance.IsNegative() {
			debtors = append(debtors, side{id: id, balance: balance})
		} else {
			creditors = append(creditors, side{id: id, balance: balance})
		}
	}
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].balance.LessThan(debtors[j].balance)
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].balance.GreaterThan(creditors[j].balance)
	})

	var transactions []Transaction
	for len(debtors) > 0 && len(creditors) > 0 {
		debtor := &debtors[0]
		creditor := &creditors[0]
		amount := decimal.Min(debtor.balance.Neg(), creditor.balance)
		if amount.IsPositive() {
			from := l.aggregates[debtor.id]
			to := l.aggregates[creditor.id]
			transactions = append(transactions, Transaction{
				From:            from.UserID,
				FromName:        from.Name,
				To:              to.UserID,
				ToName:          to.Name,
				ToBankAccount:   to.BankAccount,
				ToBankName:      to.BankName,
				Amount:          amount,
				RelatedExpenses: l.relatedExpenses(debtor.id, creditor.id),
			})
		}
		debtor.balance = debtor.balance.Add(amount)
		creditor.balance = creditor.balance.Sub(amount)
		if debtor.balance.Abs().LessThan(tolerance) {
			debtors = debtors[1:]
		}
		if creditor.balance.Abs().LessThan(tolerance) {
			creditors = creditors[1:]
		}
	}
	return transactions
}
