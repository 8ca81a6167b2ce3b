package service

import (
	"github.com/mypasslab/mypass/internal/config"
	"github.com/mypasslab/mypass/internal/crypto"
	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/store"
)

type Services struct {
	AuthService         AuthService
	RecoveryService     RecoveryService
	VaultService        VaultService
	DisclosureService   DisclosureService
	NotificationService NotificationService
	PasswordService     PasswordService
}

func NewServices(storages store.Storages, cfg config.StructuredConfig, codec *crypto.Codec, logger *logger.Logger) *Services {
	return &Services{
		AuthService:         NewAuthService(storages.UserRepository, cfg.App, logger),
		RecoveryService:     NewRecoveryService(storages.UserRepository, logger),
		VaultService:        NewVaultService(storages.VaultItemRepository, codec, logger),
		DisclosureService:   NewDisclosureService(storages.TokenRepository, cfg.Session, logger),
		NotificationService: NewNotificationService(storages.NotificationRepository, logger),
		PasswordService:     NewPasswordService(),
	}
}
