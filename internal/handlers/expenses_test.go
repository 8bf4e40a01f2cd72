package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"splittab/internal/models"
	"splittab/internal/store"
)

func TestCreateExpense(t *testing.T) {
	var replaced []models.Participant
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{
		createFn: func(_ context.Context, _ store.Tx, name string, amount decimal.Decimal, payerID int64) (int64, error) {
			if name != "Lunch" || payerID != 1 {
				t.Fatalf("unexpected create: %s payer=%d", name, payerID)
			}
			if !amount.Equal(decimal.NewFromInt(100000)) {
				t.Fatalf("unexpected amount: %s", amount)
			}
			return 7, nil
		},
		getByIDFn: func(_ context.Context, expenseID int64) (models.Expense, error) {
			return models.Expense{ID: expenseID, Name: "Lunch", Amount: decimal.NewFromInt(100000), PayerID: 1}, nil
		},
	}, stubParticipantStore{
		replaceFn: func(_ context.Context, _ store.Execer, expenseID int64, shares []models.Participant) error {
			if expenseID != 7 {
				t.Fatalf("unexpected expense id: %d", expenseID)
			}
			replaced = shares
			return nil
		},
		listByExpenseFn: func(context.Context, int64) ([]models.Participant, error) {
			return replaced, nil
		},
	}, stubSummaryService{})

	body := `{"name":"Lunch","amount":100000,"payer_id":1,"participants":[{"user_id":1,"amount":50000},{"user_id":2,"amount":50000}]}`
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateExpense(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(replaced) != 2 || replaced[0].ExpenseID != 7 {
		t.Fatalf("unexpected shares: %#v", replaced)
	}
}

func TestCreateExpenseNoParticipants(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{})

	body := `{"name":"Lunch","amount":100000,"payer_id":1,"participants":[]}`
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateExpense(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateExpenseNegativeAmount(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{})

	body := `{"name":"Lunch","amount":-5,"payer_id":1,"participants":[{"user_id":2,"amount":5}]}`
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateExpense(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateExpenseDuplicateParticipant(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{})

	body := `{"name":"Lunch","amount":10,"payer_id":1,"participants":[{"user_id":2,"amount":5},{"user_id":2,"amount":5}]}`
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateExpense(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestUpdateExpenseNotFound(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{
		updateFn: func(context.Context, store.Tx, int64, string, decimal.Decimal, int64) (int64, error) {
			return 0, nil
		},
	}, stubParticipantStore{}, stubSummaryService{})

	body := `{"name":"Lunch","amount":10,"payer_id":1,"participants":[{"user_id":2,"amount":10}]}`
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/expenses/42", strings.NewReader(body)), "id", "42")
	rr := httptest.NewRecorder()
	handler.UpdateExpense(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestListExpenses(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{
		listWithPayerFn: func(context.Context) ([]store.ExpenseWithPayer, error) {
			return []store.ExpenseWithPayer{
				{Expense: models.Expense{ID: 1, Name: "Lunch", Amount: decimal.NewFromInt(100000), PayerID: 1}, PayerName: "Alice"},
			}, nil
		},
	}, stubParticipantStore{}, stubSummaryService{})

	req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
	rr := httptest.NewRecorder()
	handler.ListExpenses(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"payer_name":"Alice"`) {
		t.Fatalf("expected payer name in body: %s", rr.Body.String())
	}
}
