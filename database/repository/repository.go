package repository

import (
	ledgerRepo "rideshare/database/repository/ledger"
	notificationRepo "rideshare/database/repository/notification"
	userRepo "rideshare/database/repository/user"
	"rideshare/database/store"
)

// Re-export the LedgerRepository interface and constructor.
type LedgerRepository = ledgerRepo.LedgerRepository

var NewStoreLedgerRepo = ledgerRepo.NewStoreLedgerRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewStoreUserRepo = userRepo.NewStoreUserRepo

// Re-export the NotificationRepository interface and constructor.
type NotificationRepository = notificationRepo.NotificationRepository

var NewStoreNotificationRepo = notificationRepo.NewStoreNotificationRepo

// Repositories bundles every repository backed by one store.
type Repositories struct {
	Ledger        LedgerRepository
	Users         UserRepository
	Notifications NotificationRepository
}

// NewRepositories builds all repositories on s.
func NewRepositories(s store.Store) *Repositories {
	return &Repositories{
		Ledger:        NewStoreLedgerRepo(s),
		Users:         NewStoreUserRepo(s),
		Notifications: NewStoreNotificationRepo(s),
	}
}
