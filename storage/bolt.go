package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const boltBucketKV = "kv" // key: storage key -> raw value

// Bolt stores values in a single bbolt bucket.
type Bolt struct {
	db *bbolt.DB
}

// NewBolt opens (or creates) the bolt file at path.
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketKV))
		return err
	}); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)

	err := b.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(boltBucketKV)).Get([]byte(key))
		if raw == nil {
			return nil
		}
		// raw is only valid inside the transaction
		value, ok = string(raw), true

		return nil
	})
	if err != nil {
		return "", false, err
	}

	return value, ok, nil
}

func (b *Bolt) Set(_ context.Context, key, value string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketKV)).Put([]byte(key), []byte(value))
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
