package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"splittab/internal/services"
	"splittab/internal/websocket"
)

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary.Global(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to build summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) GetExpenseSummary(w http.ResponseWriter, r *http.Request) {
	expenseID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := h.summary.Expense(r.Context(), expenseID)
	if errors.Is(err, services.ErrExpenseNotFound) {
		respondError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to build expense summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) GetExpensesWithStatus(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.summary.ExpensesWithStatus(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to build expense statuses")
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

type paymentRequest struct {
	Paid bool `json:"paid"`
}

func (h *Handler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	transactionID := chi.URLParam(r, "transactionId")
	status, err := h.summary.SetPaymentStatus(r.Context(), transactionID, req.Paid)
	if errors.Is(err, services.ErrInvalidTransactionID) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update payment status")
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func (h *Handler) WSPayments(w http.ResponseWriter, r *http.Request) {
	websocket.ServeWS(w, r, h.hub)
}
