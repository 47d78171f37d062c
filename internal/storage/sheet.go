package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/splitpad/internal/ledger"
	"github.com/mmynk/splitpad/internal/models"
)

// SheetKey returns the store key for a sheet. An empty id selects the default sheet.
func SheetKey(id string) string {
	if id == "" {
		return DefaultSheetKey
	}
	return DefaultSheetKey + ":" + id
}

// DecodeSheet parses a JSON-encoded sheet.
func DecodeSheet(data []byte) (models.Sheet, error) {
	var sheet models.Sheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		return models.Sheet{}, fmt.Errorf("failed to decode sheet: %w", err)
	}
	return sheet, nil
}

// EncodeSheet serialises a sheet as JSON.
func EncodeSheet(sheet models.Sheet) ([]byte, error) {
	data, err := json.Marshal(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sheet: %w", err)
	}
	return data, nil
}

// LoadLedger restores the ledger stored under key. Loading is best-effort: when
// nothing is stored, or the blob cannot be read or decoded, a new ledger seeded
// with defaults is returned. Read failures are logged, never returned.
func LoadLedger(ctx context.Context, store Store, key string, defaults []string) *ledger.Ledger {
	data, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return ledger.New(defaults...)
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to read sheet, starting fresh", "key", key, "error", err)
		return ledger.New(defaults...)
	}

	sheet, err := DecodeSheet(data)
	if err != nil {
		slog.WarnContext(ctx, "Failed to decode sheet, starting fresh", "key", key, "error", err)
		return ledger.New(defaults...)
	}
	return ledger.FromSheet(sheet)
}

// SaveLedger writes the ledger under key. Like LoadLedger it is best-effort: a
// failure is logged and reported as false, and the in-memory ledger stays valid.
func SaveLedger(ctx context.Context, store Store, key string, l *ledger.Ledger) bool {
	data, err := EncodeSheet(l.Sheet())
	if err != nil {
		slog.WarnContext(ctx, "Failed to encode sheet", "key", key, "error", err)
		return false
	}
	if err := store.Put(ctx, key, data); err != nil {
		slog.WarnContext(ctx, "Failed to save sheet", "key", key, "error", err)
		return false
	}
	return true
}
