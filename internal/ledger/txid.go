package ledger

import "fmt"

// Transaction identifiers key persisted payment statuses and must stay
// bit-exact across releases. Expense ids are numeric (serial primary
// keys), so the "overall" prefix can never collide with an expense id.

// ExpenseTransactionID identifies the raw pairwise obligation of one
// participant toward the payer of one expense.
func ExpenseTransactionID(expenseID, fromUserID, toUserID int64) string {
	return fmt.Sprintf("%d-%d-%d", expenseID, fromUserID, toUserID)
}

// OverallTransactionID identifies an aggregated cross-expense settlement
// between two users.
func OverallTransactionID(fromUserID, toUserID int64) string {
	return fmt.Sprintf("overall-%d-%d", fromUserID, toUserID)
}
