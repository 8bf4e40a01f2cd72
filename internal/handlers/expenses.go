package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"splittab/internal/models"
	"splittab/internal/money"
	"splittab/internal/validator"
)

type shareRequest struct {
	UserID int64       `json:"user_id"`
	Amount json.Number `json:"amount"`
}

type expenseRequest struct {
	Name         string         `json:"name"`
	Amount       json.Number    `json:"amount"`
	PayerID      int64          `json:"payer_id"`
	Participants []shareRequest `json:"participants"`
}

func decodeExpenseRequest(r *http.Request) (expenseRequest, decimal.Decimal, []models.Participant, error) {
	var req expenseRequest
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		return expenseRequest{}, decimal.Zero, nil, errors.New("invalid payload")
	}
	if err := validator.ValidateName(req.Name); err != nil {
		return expenseRequest{}, decimal.Zero, nil, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return expenseRequest{}, decimal.Zero, nil, err
	}
	if req.PayerID <= 0 {
		return expenseRequest{}, decimal.Zero, nil, validator.ErrInvalidPayer
	}
	if len(req.Participants) == 0 {
		return expenseRequest{}, decimal.Zero, nil, validator.ErrNoParticipants
	}
	shares := make([]models.Participant, 0, len(req.Participants))
	seen := make(map[int64]struct{}, len(req.Participants))
	for _, participant := range req.Participants {
		if participant.UserID <= 0 {
			return expenseRequest{}, decimal.Zero, nil, errInvalidID
		}
		if _, dup := seen[participant.UserID]; dup {
			return expenseRequest{}, decimal.Zero, nil, errors.New("duplicate participant")
		}
		seen[participant.UserID] = struct{}{}
		shareAmount, err := parseShareAmount(participant.Amount)
		if err != nil {
			return expenseRequest{}, decimal.Zero, nil, err
		}
		shares = append(shares, models.Participant{UserID: participant.UserID, Amount: shareAmount})
	}
	return req, amount, shares, nil
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	req, amount, shares, err := decodeExpenseRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var expenseID int64
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		id, err := h.expenses.Create(r.Context(), tx, req.Name, amount, req.PayerID)
		if err != nil {
			return err
		}
		expenseID = id
		for i := range shares {
			shares[i].ExpenseID = id
		}
		return h.participants.Replace(r.Context(), tx, id, shares)
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			respondError(w, http.StatusBadRequest, "unknown user reference")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create expense")
		return
	}
	h.respondExpense(w, r, http.StatusCreated, expenseID)
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.ListWithPayer(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load expenses")
		return
	}
	normalized := make([]map[string]any, 0, len(expenses))
	for _, expense := range expenses {
		normalized = append(normalized, map[string]any{
			"id":         expense.ID,
			"name":       expense.Name,
			"amount":     money.Float(expense.Amount),
			"payer_id":   expense.PayerID,
			"payer_name": expense.PayerName,
			"created_at": expense.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondExpense(w, r, http.StatusOK, expenseID)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, amount, shares, err := decodeExpenseRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	notFound := false
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		rows, err := h.expenses.Update(r.Context(), tx, expenseID, req.Name, amount, req.PayerID)
		if err != nil {
			return err
		}
		if rows == 0 {
			notFound = true
			return nil
		}
		for i := range shares {
			shares[i].ExpenseID = expenseID
		}
		return h.participants.Replace(r.Context(), tx, expenseID, shares)
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			respondError(w, http.StatusBadRequest, "unknown user reference")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update expense")
		return
	}
	if notFound {
		respondError(w, http.StatusNotFound, "expense not found")
		return
	}
	h.respondExpense(w, r, http.StatusOK, expenseID)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.expenses.Delete(r.Context(), expenseID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}
	if rows == 0 {
		respondError(w, http.StatusNotFound, "expense not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondExpense(w http.ResponseWriter, r *http.Request, status int, expenseID int64) {
	expense, err := h.expenses.GetByID(r.Context(), expenseID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load expense")
		return
	}
	shares, err := h.participants.ListByExpense(r.Context(), expenseID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load participants")
		return
	}
	participants := make([]map[string]any, 0, len(shares))
	for _, share := range shares {
		participants = append(participants, map[string]any{
			"user_id": share.UserID,
			"amount":  money.Float(share.Amount),
		})
	}
	respondJSON(w, status, map[string]any{
		"id":           expense.ID,
		"name":         expense.Name,
		"amount":       money.Float(expense.Amount),
		"payer_id":     expense.PayerID,
		"created_at":   expense.CreatedAt,
		"participants": participants,
	})
}
