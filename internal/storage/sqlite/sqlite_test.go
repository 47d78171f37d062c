package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/splitpad/internal/ledger"
	"github.com/mmynk/splitpad/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("New creates parent directories", func(t *testing.T) {
		if _, err := os.Stat(dbPath); err != nil {
			t.Errorf("Expected database file to exist: %v", err)
		}
	})

	t.Run("Get returns ErrNotFound for missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Put then Get returns the blob", func(t *testing.T) {
		if err := store.Put(ctx, "k1", []byte(`{"a":1}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := store.Get(ctx, "k1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != `{"a":1}` {
			t.Errorf("Get = %s, want {\"a\":1}", got)
		}
	})

	t.Run("Put overwrites existing key", func(t *testing.T) {
		if err := store.Put(ctx, "k2", []byte("first")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := store.Put(ctx, "k2", []byte("second")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := store.Get(ctx, "k2")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "second" {
			t.Errorf("Get = %s, want second", got)
		}
	})

	t.Run("Ledger round trip", func(t *testing.T) {
		l := ledger.New("Asha", "Ravi", "Nima")
		if _, ok := l.AddExpense(ledger.NewExpense{
			Title:        "Lunch",
			Payer:        "Asha",
			Amount:       300,
			Participants: []string{"Asha", "Ravi", "Nima"},
		}); !ok {
			t.Fatal("AddExpense rejected a valid expense")
		}

		if !storage.SaveLedger(ctx, store, storage.DefaultSheetKey, l) {
			t.Fatal("SaveLedger failed")
		}

		restored := storage.LoadLedger(ctx, store, storage.DefaultSheetKey, nil)
		if len(restored.Participants()) != 3 {
			t.Errorf("Participants count mismatch: got %d, want 3", len(restored.Participants()))
		}
		if len(restored.Expenses()) != 1 {
			t.Fatalf("Expenses count mismatch: got %d, want 1", len(restored.Expenses()))
		}
		if restored.Expenses()[0].ID != l.Expenses()[0].ID {
			t.Errorf("Expense ID mismatch: got %s, want %s", restored.Expenses()[0].ID, l.Expenses()[0].ID)
		}
	})
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Put(ctx, "persisted", []byte("yes")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent on an existing database
	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "persisted")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "yes" {
		t.Errorf("Get = %s, want yes", got)
	}
}
