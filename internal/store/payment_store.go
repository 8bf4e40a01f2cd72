package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"splittab/internal/models"
)

type PaymentStore struct {
	db DB
}

func NewPaymentStore(db DB) *PaymentStore {
	return &PaymentStore{db: db}
}

// GetByTransactionID reports found=false for an id with no stored record;
// callers synthesize the unpaid default.
func (s *PaymentStore) GetByTransactionID(ctx context.Context, transactionID string) (models.PaymentStatus, bool, error) {
	var row models.PaymentStatus
	err := s.db.GetContext(ctx, &row, `
		SELECT id, transaction_id, paid, paid_at, updated_at
		FROM payment_statuses
		WHERE transaction_id = $1
	`, transactionID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PaymentStatus{}, false, nil
	}
	if err != nil {
		return models.PaymentStatus{}, false, err
	}
	return row, true, nil
}

// Upsert inserts or overwrites the status for a transaction id. Last
// write wins for concurrent updates on the same id.
func (s *PaymentStore) Upsert(ctx context.Context, transactionID string, paid bool, paidAt *time.Time) (models.PaymentStatus, error) {
	var row models.PaymentStatus
	err := s.db.GetContext(ctx, &row, `
		INSERT INTO payment_statuses (id, transaction_id, paid, paid_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (transaction_id)
		DO UPDATE SET paid = EXCLUDED.paid, paid_at = EXCLUDED.paid_at, updated_at = NOW()
		RETURNING id, transaction_id, paid, paid_at, updated_at
	`, uuid.NewString(), transactionID, paid, paidAt)
	if err != nil {
		return models.PaymentStatus{}, err
	}
	return row, nil
}
