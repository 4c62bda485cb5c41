package persistence

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var slotsBucket = []byte("slots")

// BoltSlotStore keeps slots in a single-file bbolt database
type BoltSlotStore struct {
	db *bolt.DB
}

// OpenBoltSlotStore opens (or creates) the database at path
func OpenBoltSlotStore(path string) (*BoltSlotStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create slots bucket: %w", err)
	}

	return &BoltSlotStore{db: db}, nil
}

func (b *BoltSlotStore) Load(_ context.Context, sessionID, slot string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(slotsBucket).Get([]byte(slotKey(sessionID, slot)))
		if v == nil {
			return ErrSlotNotFound
		}
		// v is only valid inside the transaction
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

func (b *BoltSlotStore) Save(_ context.Context, sessionID, slot string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotsBucket).Put([]byte(slotKey(sessionID, slot)), value)
	})
}

func (b *BoltSlotStore) Ping(context.Context) error {
	return b.db.View(func(*bolt.Tx) error { return nil })
}

func (b *BoltSlotStore) Close() error {
	return b.db.Close()
}
