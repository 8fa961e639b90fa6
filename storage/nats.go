package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// BucketRecords is the KV bucket holding transformation records.
const BucketRecords = "PLATECHANGE_RECORDS"

// KVStore persists records in a NATS JetStream KV bucket.
type KVStore struct {
	records jetstream.KeyValue
}

// NewKVStore binds to the records bucket, creating it when absent.
func NewKVStore(ctx context.Context, js jetstream.JetStream) (*KVStore, error) {
	kv, err := js.KeyValue(ctx, BucketRecords)
	if err != nil {
		kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      BucketRecords,
			Description: "platechange transformation records",
			History:     5,
		})
		if err != nil {
			return nil, fmt.Errorf("create records bucket: %w", err)
		}
	}
	return &KVStore{records: kv}, nil
}

// Create stores the record, assigning ID and CreatedAt.
func (s *KVStore) Create(ctx context.Context, rec *Record) error {
	rec.ID = NewID()
	rec.CreatedAt = time.Now()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if _, err := s.records.Create(ctx, rec.ID, data); err != nil {
		return fmt.Errorf("store record: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *KVStore) Get(ctx context.Context, id string) (*Record, error) {
	entry, err := s.records.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &rec, nil
}

// List returns all records, newest first. Entries that fail to load are
// skipped.
func (s *KVStore) List(ctx context.Context) ([]*Record, error) {
	keys, err := s.records.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list record keys: %w", err)
	}

	records := make([]*Record, 0, len(keys))
	for _, key := range keys {
		entry, err := s.records.Get(ctx, key)
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(entry.Value(), &rec); err != nil {
			continue
		}
		records = append(records, &rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound)
}
