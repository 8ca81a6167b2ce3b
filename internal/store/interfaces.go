package store

import (
	"context"
	"time"

	"github.com/mypasslab/mypass/models"
)

// UserRepository persists vault accounts.
type UserRepository interface {
	// CreateUser inserts a new account and returns it with server-assigned
	// fields (UserID, CreatedAt). Returns ErrEmailAlreadyExists on a
	// duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the account with the given email or
	// ErrNoUserWasFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// UpdatePassword replaces the stored password hash for the user.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// VaultItemRepository persists encrypted secret records. The repository only
// ever sees the opaque encrypted blob, never decrypted field mappings.
type VaultItemRepository interface {
	Save(ctx context.Context, item models.VaultItem) error

	// GetByID returns the item with the given id owned by userID, or
	// ErrVaultItemNotFound.
	GetByID(ctx context.Context, userID int64, id string) (models.VaultItem, error)

	GetAll(ctx context.Context, userID int64) ([]models.VaultItem, error)

	// GetAllItems returns every stored item regardless of owner. Used by the
	// background expiry scanner.
	GetAllItems(ctx context.Context) ([]models.VaultItem, error)

	// Update applies the non-nil fields of update. Returns
	// ErrVaultItemNotFound when no row matches id+owner.
	Update(ctx context.Context, update models.VaultItemUpdate) error

	// Delete removes the item. Returns ErrVaultItemNotFound when no row
	// matches id+owner.
	Delete(ctx context.Context, userID int64, id string) error
}

// TokenRepository persists disclosure tokens. MarkUsed must be a
// compare-and-swap so that concurrent redemptions of the same token see
// mutually exclusive outcomes.
type TokenRepository interface {
	Insert(ctx context.Context, token models.DisclosureToken) error

	// Find returns the unused token matching the token string and owner, or
	// ErrTokenNotFound. Used tokens are indistinguishable from absent ones.
	Find(ctx context.Context, tokenString string, ownerID int64) (models.DisclosureToken, error)

	// MarkUsed flips used to true iff it is currently false. Returns
	// ErrTokenAlreadyUsed when a concurrent redeemer got there first, and
	// ErrTokenNotFound when no such token exists.
	MarkUsed(ctx context.Context, tokenString string) error

	// PurgeExpired deletes every token whose expiry is before now.
	PurgeExpired(ctx context.Context, now time.Time) error
}

// NotificationRepository persists expiry notifications.
type NotificationRepository interface {
	Add(ctx context.Context, n models.Notification) error
	GetUnread(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error

	// HasUnread reports whether an unread notification with exactly this
	// content already exists, so the expiry scanner does not repeat itself.
	HasUnread(ctx context.Context, userID int64, content string) (bool, error)
}
