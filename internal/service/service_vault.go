package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mypasslab/mypass/internal/crypto"
	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/mask"
	"github.com/mypasslab/mypass/internal/store"
	"github.com/mypasslab/mypass/internal/utils"
	"github.com/mypasslab/mypass/models"
)

// vaultService stores and retrieves encrypted vault records. Field maps are
// sealed through the codec before they reach storage, and every read path
// returns masked previews; raw values leave the service only through Field.
type vaultService struct {
	vaultRepository store.VaultItemRepository
	codec           *crypto.Codec
	uuid            *utils.UUIDGenerator
	logger          *logger.Logger
}

func NewVaultService(vaultRepository store.VaultItemRepository, codec *crypto.Codec, logger *logger.Logger) VaultService {
	return &vaultService{
		vaultRepository: vaultRepository,
		codec:           codec,
		uuid:            utils.NewUUIDGenerator(),
		logger:          logger,
	}
}

// Create encrypts fields and persists a new vault record for userID.
//
// Returns the stored record (with a generated ID) or:
//   - ErrInvalidDataProvided if title, itemType, or fields are empty.
//   - A wrapped codec or storage error.
func (v *vaultService) Create(ctx context.Context, userID int64, itemType string, title string, fields map[string]string) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	if userID == 0 || itemType == "" || title == "" || len(fields) == 0 {
		return models.VaultItem{}, ErrInvalidDataProvided
	}

	blob, err := v.codec.Encrypt(fields)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("vault item encryption failed")
		return models.VaultItem{}, fmt.Errorf("vault item encryption failed: %w", err)
	}

	now := time.Now()
	item := models.VaultItem{
		ID:            v.uuid.Generate(),
		UserID:        userID,
		ItemType:      itemType,
		Title:         title,
		EncryptedData: blob,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := v.vaultRepository.Save(ctx, item); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("vault item save failed")
		return models.VaultItem{}, fmt.Errorf("vault item save failed: %w", err)
	}

	return item, nil
}

// List returns masked previews of all records belonging to userID.
// Records whose payload cannot be decrypted still appear, with empty fields.
func (v *vaultService) List(ctx context.Context, userID int64) ([]models.VaultItemPreview, error) {
	items, err := v.vaultRepository.GetAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("vault items lookup failed: %w", err)
	}

	previews := make([]models.VaultItemPreview, 0, len(items))
	for _, item := range items {
		previews = append(previews, v.preview(item))
	}

	return previews, nil
}

// Get returns the masked preview of a single record scoped to userID.
//
// Returns store.ErrVaultItemNotFound when the record does not exist or
// belongs to another user.
func (v *vaultService) Get(ctx context.Context, userID int64, id string) (models.VaultItemPreview, error) {
	item, err := v.vaultRepository.GetByID(ctx, userID, id)
	if err != nil {
		return models.VaultItemPreview{}, fmt.Errorf("vault item lookup failed: %w", err)
	}

	return v.preview(item), nil
}

// Update re-encrypts fields (when provided) and applies the partial update.
func (v *vaultService) Update(ctx context.Context, upd models.VaultItemUpdate, fields map[string]string) error {
	log := logger.FromContext(ctx)

	if upd.ID == "" || upd.UserID == 0 {
		return ErrInvalidDataProvided
	}

	if len(fields) > 0 {
		blob, err := v.codec.Encrypt(fields)
		if err != nil {
			log.Err(err).Str("id", upd.ID).Msg("vault item encryption failed")
			return fmt.Errorf("vault item encryption failed: %w", err)
		}
		upd.EncryptedData = &blob
	}

	if err := v.vaultRepository.Update(ctx, upd); err != nil {
		log.Err(err).Str("id", upd.ID).Msg("vault item update failed")
		return fmt.Errorf("vault item update failed: %w", err)
	}

	return nil
}

// Delete removes a record scoped to userID.
func (v *vaultService) Delete(ctx context.Context, userID int64, id string) error {
	if err := v.vaultRepository.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("vault item delete failed: %w", err)
	}

	return nil
}

// Field returns the raw plaintext value of a single field of a record.
// Field names match case-insensitively. This is the only read path that
// bypasses masking; callers gate it behind disclosure tokens and the
// session unmask quota.
//
// Returns ErrFieldNotFound when the record decrypts to nothing or no field
// matches.
func (v *vaultService) Field(ctx context.Context, userID int64, id string, fieldName string) (string, error) {
	item, err := v.vaultRepository.GetByID(ctx, userID, id)
	if err != nil {
		return "", fmt.Errorf("vault item lookup failed: %w", err)
	}

	fields := v.codec.Decrypt(item.EncryptedData)
	for name, value := range fields {
		if strings.EqualFold(name, fieldName) {
			return value, nil
		}
	}

	return "", ErrFieldNotFound
}

func (v *vaultService) preview(item models.VaultItem) models.VaultItemPreview {
	fields := v.codec.Decrypt(item.EncryptedData)

	return models.VaultItemPreview{
		ID:       item.ID,
		ItemType: item.ItemType,
		Title:    item.Title,
		Preview:  mask.PreviewString(fields),
		Fields:   mask.PreviewMap(fields),
	}
}
