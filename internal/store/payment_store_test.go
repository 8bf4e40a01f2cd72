package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"splittab/internal/models"
)

func TestPaymentStoreGetMissingIsNotAnError(t *testing.T) {
	store := NewPaymentStore(stubDB{
		getFn: func(context.Context, any, string, ...any) error {
			return sql.ErrNoRows
		},
	})
	status, found, err := store.GetByTransactionID(context.Background(), "overall-2-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("expected found=false, got %+v", status)
	}
}

func TestPaymentStoreGetFound(t *testing.T) {
	store := NewPaymentStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "WHERE transaction_id = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			row := dest.(*models.PaymentStatus)
			*row = models.PaymentStatus{TransactionID: args[0].(string), Paid: true}
			return nil
		},
	})
	status, found, err := store.GetByTransactionID(context.Background(), "7-2-1")
	if err != nil || !found {
		t.Fatalf("unexpected result: %v found=%v", err, found)
	}
	if status.TransactionID != "7-2-1" || !status.Paid {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestPaymentStoreGetPropagatesError(t *testing.T) {
	storeErr := errors.New("connection lost")
	store := NewPaymentStore(stubDB{
		getFn: func(context.Context, any, string, ...any) error {
			return storeErr
		},
	})
	if _, _, err := store.GetByTransactionID(context.Background(), "7-2-1"); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestPaymentStoreUpsert(t *testing.T) {
	paidAt := time.Now()
	store := NewPaymentStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "ON CONFLICT (transaction_id)") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 4 {
				t.Fatalf("unexpected args: %#v", args)
			}
			if args[0] == "" {
				t.Fatalf("expected generated row id")
			}
			if args[1] != "overall-2-1" || args[2] != true {
				t.Fatalf("unexpected args: %#v", args)
			}
			row := dest.(*models.PaymentStatus)
			*row = models.PaymentStatus{TransactionID: "overall-2-1", Paid: true, PaidAt: &paidAt, UpdatedAt: time.Now()}
			return nil
		},
	})
	status, err := store.Upsert(context.Background(), "overall-2-1", true, &paidAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Paid || status.PaidAt == nil {
		t.Fatalf("unexpected status: %+v", status)
	}
}
