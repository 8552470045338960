// Package store is the persistence adapter of the ledger. Each named
// collection is stored as one opaque blob that is always read and written
// whole.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names.
const (
	Users            = "users"
	Rides            = "rides"
	Bookings         = "bookings"
	Notifications    = "notifications"
	OutboundMessages = "outboundMessages"
)

var ErrUnknownDriver = errors.New("unknown store driver")

// Store gets and sets named collections as whole-document blobs.
type Store interface {
	// Get returns the blob of a collection, or nil when it was never written.
	Get(ctx context.Context, collection string) ([]byte, error)
	// Set replaces a collection.
	Set(ctx context.Context, collection string, blob []byte) error
	// SetMany replaces several collections; either all writes land or none.
	SetMany(ctx context.Context, blobs map[string][]byte) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Load decodes a collection into out. out is left untouched when the
// collection does not exist yet.
func Load(ctx context.Context, s Store, collection string, out any) error {
	blob, err := s.Get(ctx, collection)
	if err != nil {
		return fmt.Errorf("load %s: %w", collection, err)
	}
	if len(blob) == 0 {
		return nil
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// Save encodes v and replaces the collection with it.
func Save(ctx context.Context, s Store, collection string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	if err := s.Set(ctx, collection, blob); err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}
	return nil
}

// SaveMany encodes every value and replaces all collections in one write.
func SaveMany(ctx context.Context, s Store, values map[string]any) error {
	blobs := make(map[string][]byte, len(values))
	for name, v := range values {
		blob, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		blobs[name] = blob
	}
	if err := s.SetMany(ctx, blobs); err != nil {
		return fmt.Errorf("save collections: %w", err)
	}
	return nil
}
