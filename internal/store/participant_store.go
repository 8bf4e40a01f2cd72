package store

import (
	"context"

	"splittab/internal/models"
)

type ParticipantStore struct {
	db DB
}

func NewParticipantStore(db DB) *ParticipantStore {
	return &ParticipantStore{db: db}
}

func (s *ParticipantStore) ListAll(ctx context.Context) ([]models.Participant, error) {
	var rows []models.Participant
	err := s.db.SelectContext(ctx, &rows, `
		SELECT expense_id, user_id, amount
		FROM participants
		ORDER BY expense_id, user_id
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ParticipantStore) ListByExpense(ctx context.Context, expenseID int64) ([]models.Participant, error) {
	var rows []models.Participant
	err := s.db.SelectContext(ctx, &rows, `
		SELECT expense_id, user_id, amount
		FROM participants
		WHERE expense_id = $1
		ORDER BY user_id
	`, expenseID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Replace swaps the full share set of an expense inside the caller's
// transaction, so expense and shares commit atomically.
func (s *ParticipantStore) Replace(ctx context.Context, tx Execer, expenseID int64, shares []models.Participant) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE expense_id = $1`, expenseID); err != nil {
		return err
	}
	query := `
		INSERT INTO participants (expense_id, user_id, amount)
		VALUES ($1, $2, $3)
	`
	for _, share := range shares {
		if _, err := tx.ExecContext(ctx, query, expenseID, share.UserID, share.Amount); err != nil {
			return err
		}
	}
	return nil
}
