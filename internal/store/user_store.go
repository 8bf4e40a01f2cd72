package store

import (
	"context"

	"splittab/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, name string, bankAccount, bankName *string) (models.User, error) {
	var row models.User
	err := s.db.GetContext(ctx, &row, `
		INSERT INTO users (name, bank_account, bank_name)
		VALUES ($1, $2, $3)
		RETURNING id, name, bank_account, bank_name, created_at
	`, name, bankAccount, bankName)
	if err != nil {
		return models.User{}, err
	}
	return row, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var rows []models.User
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, bank_account, bank_name, created_at
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *UserStore) GetByID(ctx context.Context, userID int64) (models.User, error) {
	var row models.User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, bank_account, bank_name, created_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		return models.User{}, err
	}
	return row, nil
}

func (s *UserStore) Update(ctx context.Context, userID int64, name string, bankAccount, bankName *string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = $1, bank_account = $2, bank_name = $3
		WHERE id = $4
	`, name, bankAccount, bankName, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *UserStore) Delete(ctx context.Context, userID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
