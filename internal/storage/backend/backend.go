// Package backend opens the storage backend selected by configuration.
package backend

import (
	"fmt"

	"github.com/mmynk/splitpad/internal/config"
	"github.com/mmynk/splitpad/internal/storage"
	"github.com/mmynk/splitpad/internal/storage/jsonfile"
	"github.com/mmynk/splitpad/internal/storage/sqlite"
)

// Open returns the store named by cfg.StoreBackend along with the path it uses.
func Open(cfg *config.Config) (storage.Store, string, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, "", err
		}
		return store, cfg.DBPath, nil
	case config.BackendJSON:
		store, err := jsonfile.New(cfg.JSONPath)
		if err != nil {
			return nil, "", err
		}
		return store, cfg.JSONPath, nil
	default:
		return nil, "", fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
