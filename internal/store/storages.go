package store

import "github.com/mypasslab/mypass/internal/logger"

// Storages aggregates every repository so upper layers can be wired with a
// single dependency.
type Storages struct {
	UserRepository         UserRepository
	VaultItemRepository    VaultItemRepository
	TokenRepository        TokenRepository
	NotificationRepository NotificationRepository
}

// NewStorages constructs all repositories over one database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, logger),
		VaultItemRepository:    NewVaultItemRepository(db, logger),
		TokenRepository:        NewTokenRepository(db, logger),
		NotificationRepository: NewNotificationRepository(db, logger),
	}
}
