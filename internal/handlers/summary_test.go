package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"splittab/internal/models"
	"splittab/internal/services"
)

func TestGetSummary(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{
		globalFn: func(context.Context) (services.GlobalSummary, error) {
			return services.GlobalSummary{
				UserSummary: []services.UserSummary{{ID: 1, Name: "A", Balance: 50000}},
				Transactions: []services.Transaction{{
					TransactionID: "overall-2-1",
					From:          2,
					To:            1,
					Amount:        50000,
				}},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	rr := httptest.NewRecorder()
	handler.GetSummary(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"userSummary"`) || !strings.Contains(body, `"overall-2-1"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestGetExpenseSummaryNotFound(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{
		expenseFn: func(context.Context, int64) (services.ExpenseSummary, error) {
			return services.ExpenseSummary{}, services.ErrExpenseNotFound
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/summary/expense/42", nil), "id", "42")
	rr := httptest.NewRecorder()
	handler.GetExpenseSummary(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestGetExpensesWithStatus(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{
		expensesWithStatusFn: func(context.Context) ([]services.ExpenseStatus, error) {
			return []services.ExpenseStatus{{ID: 1, Name: "Lunch", PaymentCount: 1, CompletedCount: 1, AllPaymentsCompleted: true, ParticipantsCount: 2}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/summary/expenses-with-status", nil)
	rr := httptest.NewRecorder()
	handler.GetExpensesWithStatus(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"all_payments_completed":true`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestSetPaymentStatus(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{
		setPaymentStatusFn: func(_ context.Context, transactionID string, paid bool) (models.PaymentStatus, error) {
			if transactionID != "overall-2-1" || !paid {
				t.Fatalf("unexpected update: %s paid=%v", transactionID, paid)
			}
			return models.PaymentStatus{TransactionID: transactionID, Paid: paid}, nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/summary/payment/overall-2-1", strings.NewReader(`{"paid":true}`)), "transactionId", "overall-2-1")
	rr := httptest.NewRecorder()
	handler.SetPaymentStatus(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestSetPaymentStatusInvalidPayload(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{})

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/summary/payment/overall-2-1", strings.NewReader(`{`)), "transactionId", "overall-2-1")
	rr := httptest.NewRecorder()
	handler.SetPaymentStatus(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSetPaymentStatusEmptyID(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{
		setPaymentStatusFn: func(context.Context, string, bool) (models.PaymentStatus, error) {
			return models.PaymentStatus{}, services.ErrInvalidTransactionID
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/summary/payment/", strings.NewReader(`{"paid":true}`)), "transactionId", "")
	rr := httptest.NewRecorder()
	handler.SetPaymentStatus(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
