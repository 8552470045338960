package notificationRepo

import (
	"context"
	"fmt"
	"sync"

	"rideshare/database/store"
	"rideshare/models"
	"rideshare/utils"
)

// StoreNotificationRepo implements NotificationRepository on the
// notifications and outboundMessages collections.
type StoreNotificationRepo struct {
	store store.Store
	mu    sync.Mutex
}

func NewStoreNotificationRepo(s store.Store) NotificationRepository {
	return &StoreNotificationRepo{store: s}
}

func (r *StoreNotificationRepo) loadAll(ctx context.Context) (map[string][]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()
	all := map[string][]models.Notification{}
	if err := store.Load(ctx, r.store, store.Notifications, &all); err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	return all, nil
}

func (r *StoreNotificationRepo) saveAll(ctx context.Context, all map[string][]models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()
	if err := store.Save(ctx, r.store, store.Notifications, all); err != nil {
		return fmt.Errorf("failed to save notifications: %w", err)
	}
	return nil
}

func (r *StoreNotificationRepo) Append(ctx context.Context, email string, n models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	all[email] = append(all[email], n)
	return r.saveAll(ctx, all)
}

func (r *StoreNotificationRepo) List(ctx context.Context, email string) ([]models.Notification, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	list := all[email]
	if list == nil {
		list = []models.Notification{}
	}
	return list, nil
}

func (r *StoreNotificationRepo) MarkRead(ctx context.Context, email, id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	list := all[email]
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if list[i].IsRead {
			n := list[i]
			return &n, nil
		}
		list[i].IsRead = true
		if err := r.saveAll(ctx, all); err != nil {
			return nil, err
		}
		n := list[i]
		return &n, nil
	}
	return nil, utils.NewNotFoundError("notification %s not found", id)
}

func (r *StoreNotificationRepo) AppendOutbound(ctx context.Context, msg models.OutboundMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()

	var log []models.OutboundMessage
	if err := store.Load(ctx, r.store, store.OutboundMessages, &log); err != nil {
		return fmt.Errorf("failed to load outbound messages: %w", err)
	}
	log = append(log, msg)
	if err := store.Save(ctx, r.store, store.OutboundMessages, log); err != nil {
		return fmt.Errorf("failed to save outbound messages: %w", err)
	}
	return nil
}

func (r *StoreNotificationRepo) ListOutbound(ctx context.Context) ([]models.OutboundMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()
	log := []models.OutboundMessage{}
	if err := store.Load(ctx, r.store, store.OutboundMessages, &log); err != nil {
		return nil, fmt.Errorf("failed to load outbound messages: %w", err)
	}
	return log, nil
}
