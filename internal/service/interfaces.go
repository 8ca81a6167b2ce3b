package service

import (
	"context"

	"github.com/mypasslab/mypass/internal/recovery"
	"github.com/mypasslab/mypass/models"
)

type AuthService interface {
	Register(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, email string, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (string, error)
	ParseToken(ctx context.Context, tokenString string) (int64, error)
}

type RecoveryService interface {
	ResetPassword(ctx context.Context, email string, answers recovery.Answers, newPassword string) error
}

type VaultService interface {
	Create(ctx context.Context, userID int64, itemType string, title string, fields map[string]string) (models.VaultItem, error)
	List(ctx context.Context, userID int64) ([]models.VaultItemPreview, error)
	Get(ctx context.Context, userID int64, id string) (models.VaultItemPreview, error)
	Update(ctx context.Context, upd models.VaultItemUpdate, fields map[string]string) error
	Delete(ctx context.Context, userID int64, id string) error
	Field(ctx context.Context, userID int64, id string, fieldName string) (string, error)
}

type DisclosureService interface {
	Issue(ctx context.Context, ownerID int64, recordID *string, fieldName *string) (models.DisclosureToken, error)
	Validate(ctx context.Context, token string, ownerID int64) (models.DisclosureToken, error)
	Redeem(ctx context.Context, token string, ownerID int64, recordID string, fieldName string) error
}

type NotificationService interface {
	Unread(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
}

type PasswordService interface {
	Generate(spec models.PasswordSpec) (string, error)
}
