package ledgerRepo

import (
	"context"
	"fmt"
	"sync"

	"rideshare/database/store"
	"rideshare/models"
	"rideshare/utils"
)

// StoreLedgerRepo implements LedgerRepository on top of a Store.
type StoreLedgerRepo struct {
	store store.Store
	mu    sync.Mutex
}

// NewStoreLedgerRepo creates a ledger repository backed by s.
func NewStoreLedgerRepo(s store.Store) LedgerRepository {
	return &StoreLedgerRepo{store: s}
}

func (r *StoreLedgerRepo) load(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	snap := &Snapshot{}
	if err := store.Load(ctx, r.store, store.Rides, &snap.Rides); err != nil {
		return nil, err
	}
	if err := store.Load(ctx, r.store, store.Bookings, &snap.Bookings); err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *StoreLedgerRepo) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap, err := r.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return snap, nil
}

func (r *StoreLedgerRepo) Update(ctx context.Context, fn func(*Snapshot) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	if err := fn(snap); err != nil {
		return err
	}

	// Persist empty collections as [] rather than null.
	if snap.Rides == nil {
		snap.Rides = []models.Ride{}
	}
	if snap.Bookings == nil {
		snap.Bookings = []models.Booking{}
	}

	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()
	if err := store.SaveMany(ctx, r.store, map[string]any{
		store.Rides:    snap.Rides,
		store.Bookings: snap.Bookings,
	}); err != nil {
		return fmt.Errorf("failed to commit ledger: %w", err)
	}
	return nil
}
