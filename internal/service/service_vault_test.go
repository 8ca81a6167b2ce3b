package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mypasslab/mypass/internal/crypto"
	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/store"
	"github.com/mypasslab/mypass/internal/utils"
	"github.com/mypasslab/mypass/models"
)

type mockVaultItemRepository struct {
	saveFn        func(ctx context.Context, item models.VaultItem) error
	getByIDFn     func(ctx context.Context, userID int64, id string) (models.VaultItem, error)
	getAllFn      func(ctx context.Context, userID int64) ([]models.VaultItem, error)
	getAllItemsFn func(ctx context.Context) ([]models.VaultItem, error)
	updateFn      func(ctx context.Context, update models.VaultItemUpdate) error
	deleteFn      func(ctx context.Context, userID int64, id string) error
}

func (m *mockVaultItemRepository) Save(ctx context.Context, item models.VaultItem) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, item)
	}
	return nil
}

func (m *mockVaultItemRepository) GetByID(ctx context.Context, userID int64, id string) (models.VaultItem, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, userID, id)
	}
	return models.VaultItem{}, store.ErrVaultItemNotFound
}

func (m *mockVaultItemRepository) GetAll(ctx context.Context, userID int64) ([]models.VaultItem, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockVaultItemRepository) GetAllItems(ctx context.Context) ([]models.VaultItem, error) {
	if m.getAllItemsFn != nil {
		return m.getAllItemsFn(ctx)
	}
	return nil, nil
}

func (m *mockVaultItemRepository) Update(ctx context.Context, update models.VaultItemUpdate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, update)
	}
	return nil
}

func (m *mockVaultItemRepository) Delete(ctx context.Context, userID int64, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func newVaultTestCodec(t *testing.T) *crypto.Codec {
	t.Helper()

	ks := crypto.NewKeyStore(filepath.Join(t.TempDir(), "secret.key"), logger.Nop())
	require.NoError(t, ks.LoadOrCreate())

	return crypto.NewCodec(ks, logger.Nop())
}

func newTestVaultService(t *testing.T, repo *mockVaultItemRepository) (*vaultService, *crypto.Codec) {
	codec := newVaultTestCodec(t)
	svc := &vaultService{
		vaultRepository: repo,
		codec:           codec,
		uuid:            utils.NewUUIDGenerator(),
		logger:          logger.Nop(),
	}
	return svc, codec
}

func loginFields() map[string]string {
	return map[string]string{
		"username": "alice",
		"password": "hunter42",
		"url":      "https://example.com",
	}
}

func TestVaultService_Create_EncryptsBeforeStorage(t *testing.T) {
	var stored models.VaultItem
	repo := &mockVaultItemRepository{
		saveFn: func(_ context.Context, item models.VaultItem) error {
			stored = item
			return nil
		},
	}
	svc, codec := newTestVaultService(t, repo)

	item, err := svc.Create(context.Background(), 42, "login", "GitHub", loginFields())

	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, int64(42), stored.UserID)
	assert.NotContains(t, stored.EncryptedData, "hunter42")
	assert.Equal(t, loginFields(), codec.Decrypt(stored.EncryptedData))
}

func TestVaultService_Create_StampsTimestamps(t *testing.T) {
	var stored models.VaultItem
	repo := &mockVaultItemRepository{
		saveFn: func(_ context.Context, item models.VaultItem) error {
			stored = item
			return nil
		},
	}
	svc, _ := newTestVaultService(t, repo)

	item, err := svc.Create(context.Background(), 42, "login", "GitHub", loginFields())

	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), item.CreatedAt, time.Minute)
	assert.Equal(t, item.CreatedAt, item.UpdatedAt)
	assert.Equal(t, item.CreatedAt, stored.CreatedAt)
	assert.Equal(t, item.UpdatedAt, stored.UpdatedAt)
}

func TestVaultService_Create_InvalidData(t *testing.T) {
	svc, _ := newTestVaultService(t, &mockVaultItemRepository{})

	tests := []struct {
		name     string
		userID   int64
		itemType string
		title    string
		fields   map[string]string
	}{
		{"no user", 0, "login", "GitHub", loginFields()},
		{"no type", 42, "", "GitHub", loginFields()},
		{"no title", 42, "login", "", loginFields()},
		{"no fields", 42, "login", "GitHub", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.userID, tt.itemType, tt.title, tt.fields)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestVaultService_Get_ReturnsMaskedPreview(t *testing.T) {
	repo := &mockVaultItemRepository{}
	svc, codec := newTestVaultService(t, repo)

	blob, err := codec.Encrypt(loginFields())
	require.NoError(t, err)

	repo.getByIDFn = func(_ context.Context, userID int64, id string) (models.VaultItem, error) {
		assert.Equal(t, int64(42), userID)
		assert.Equal(t, "item-1", id)
		return models.VaultItem{
			ID: "item-1", UserID: 42, ItemType: "login", Title: "GitHub",
			EncryptedData: blob,
		}, nil
	}

	preview, err := svc.Get(context.Background(), 42, "item-1")

	require.NoError(t, err)
	assert.Equal(t, "h******2", preview.Fields["password"])
	assert.Equal(t, "alice", preview.Fields["username"])
	assert.NotContains(t, preview.Preview, "hunter42")
}

func TestVaultService_List_CorruptedItemDegradesToEmptyFields(t *testing.T) {
	repo := &mockVaultItemRepository{}
	svc, codec := newTestVaultService(t, repo)

	blob, err := codec.Encrypt(loginFields())
	require.NoError(t, err)

	repo.getAllFn = func(_ context.Context, _ int64) ([]models.VaultItem, error) {
		return []models.VaultItem{
			{ID: "good", Title: "GitHub", EncryptedData: blob},
			{ID: "bad", Title: "Corrupt", EncryptedData: "###garbage###"},
		}, nil
	}

	previews, err := svc.List(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, previews, 2)
	assert.NotEmpty(t, previews[0].Fields)
	assert.Empty(t, previews[1].Fields)
	assert.Equal(t, "Corrupt", previews[1].Title)
}

func TestVaultService_Field_CaseInsensitiveLookup(t *testing.T) {
	repo := &mockVaultItemRepository{}
	svc, codec := newTestVaultService(t, repo)

	blob, err := codec.Encrypt(map[string]string{"Password": "hunter42"})
	require.NoError(t, err)

	repo.getByIDFn = func(_ context.Context, _ int64, _ string) (models.VaultItem, error) {
		return models.VaultItem{ID: "item-1", UserID: 42, EncryptedData: blob}, nil
	}

	value, err := svc.Field(context.Background(), 42, "item-1", "password")

	require.NoError(t, err)
	assert.Equal(t, "hunter42", value)
}

func TestVaultService_Field_NotFound(t *testing.T) {
	repo := &mockVaultItemRepository{}
	svc, codec := newTestVaultService(t, repo)

	blob, err := codec.Encrypt(loginFields())
	require.NoError(t, err)

	repo.getByIDFn = func(_ context.Context, _ int64, _ string) (models.VaultItem, error) {
		return models.VaultItem{ID: "item-1", UserID: 42, EncryptedData: blob}, nil
	}

	_, err = svc.Field(context.Background(), 42, "item-1", "cvv")

	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestVaultService_Field_CorruptedPayload(t *testing.T) {
	repo := &mockVaultItemRepository{
		getByIDFn: func(_ context.Context, _ int64, _ string) (models.VaultItem, error) {
			return models.VaultItem{ID: "item-1", UserID: 42, EncryptedData: "###garbage###"}, nil
		},
	}
	svc, _ := newTestVaultService(t, repo)

	_, err := svc.Field(context.Background(), 42, "item-1", "password")

	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestVaultService_Update_ReencryptsFields(t *testing.T) {
	var applied models.VaultItemUpdate
	repo := &mockVaultItemRepository{
		updateFn: func(_ context.Context, update models.VaultItemUpdate) error {
			applied = update
			return nil
		},
	}
	svc, codec := newTestVaultService(t, repo)

	newTitle := "GitLab"
	err := svc.Update(context.Background(), models.VaultItemUpdate{
		ID:     "item-1",
		UserID: 42,
		Title:  &newTitle,
	}, map[string]string{"password": "NewSecret42"})

	require.NoError(t, err)
	require.NotNil(t, applied.EncryptedData)
	assert.Equal(t, map[string]string{"password": "NewSecret42"}, codec.Decrypt(*applied.EncryptedData))
	assert.Equal(t, &newTitle, applied.Title)
}

func TestVaultService_Update_NoFieldsLeavesPayloadAlone(t *testing.T) {
	var applied models.VaultItemUpdate
	repo := &mockVaultItemRepository{
		updateFn: func(_ context.Context, update models.VaultItemUpdate) error {
			applied = update
			return nil
		},
	}
	svc, _ := newTestVaultService(t, repo)

	newTitle := "GitLab"
	err := svc.Update(context.Background(), models.VaultItemUpdate{
		ID:     "item-1",
		UserID: 42,
		Title:  &newTitle,
	}, nil)

	require.NoError(t, err)
	assert.Nil(t, applied.EncryptedData)
}

func TestVaultService_Delete_PropagatesNotFound(t *testing.T) {
	repo := &mockVaultItemRepository{
		deleteFn: func(_ context.Context, _ int64, _ string) error {
			return store.ErrVaultItemNotFound
		},
	}
	svc, _ := newTestVaultService(t, repo)

	err := svc.Delete(context.Background(), 42, "missing")

	assert.ErrorIs(t, err, store.ErrVaultItemNotFound)
}
