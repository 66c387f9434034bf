package storage

import (
	"context"
	"fmt"

	"recipebox/config"
)

// Open builds the backend named by cfg.Backend.
func Open(ctx context.Context, cfg config.Storage) (KV, error) {
	switch cfg.Backend {
	case config.BackendBolt:
		return NewBolt(cfg.Path)
	case config.BackendSQLite:
		return NewSQLite(cfg.Path)
	case config.BackendFirestore:
		return NewFirestore(ctx, cfg.Firestore.Project, cfg.Firestore.Collection, cfg.Firestore.Credentials)
	case config.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
