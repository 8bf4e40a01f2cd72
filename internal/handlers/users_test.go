package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"

	"splittab/internal/models"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateUser(t *testing.T) {
	handler := newTestHandler(stubUserStore{
		createFn: func(_ context.Context, name string, bankAccount, bankName *string) (models.User, error) {
			if name != "Alice" {
				t.Fatalf("unexpected name: %s", name)
			}
			return models.User{ID: 1, Name: name}, nil
		},
	}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Alice"}`))
	rr := httptest.NewRecorder()
	handler.CreateUser(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCreateUserMissingName(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"  "}`))
	rr := httptest.NewRecorder()
	handler.CreateUser(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestGetUserNotFound(t *testing.T) {
	handler := newTestHandler(stubUserStore{
		getByIDFn: func(context.Context, int64) (models.User, error) {
			return models.User{}, sql.ErrNoRows
		},
	}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/users/42", nil), "id", "42")
	rr := httptest.NewRecorder()
	handler.GetUser(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestGetUserInvalidID(t *testing.T) {
	handler := newTestHandler(stubUserStore{}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/users/abc", nil), "id", "abc")
	rr := httptest.NewRecorder()
	handler.GetUser(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestDeleteUserReferenced(t *testing.T) {
	handler := newTestHandler(stubUserStore{
		deleteFn: func(context.Context, int64) (int64, error) {
			return 0, &pq.Error{Code: "23503"}
		},
	}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{})

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/users/1", nil), "id", "1")
	rr := httptest.NewRecorder()
	handler.DeleteUser(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	handler := newTestHandler(stubUserStore{
		deleteFn: func(context.Context, int64) (int64, error) {
			return 0, nil
		},
	}, stubExpenseStore{}, stubParticipantStore{}, stubSummaryService{})

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/users/42", nil), "id", "42")
	rr := httptest.NewRecorder()
	handler.DeleteUser(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
