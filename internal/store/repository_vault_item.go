package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/models"
)

var vaultItemColumns = []string{
	"id", "user_id", "item_type", "title", "encrypted_data", "created_at", "updated_at",
}

// vaultItemRepository implements [VaultItemRepository] against the
// "vault_items" table. The encrypted_data column is opaque at this layer;
// encryption and masking happen above, in the service layer.
type vaultItemRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewVaultItemRepository constructs a [VaultItemRepository] backed by the
// provided database connection and logger.
func NewVaultItemRepository(db *DB, logger *logger.Logger) VaultItemRepository {
	logger.Debug().Msg("creating vault item repository")
	return &vaultItemRepository{
		db:     db,
		logger: logger,
	}
}

// Save inserts a new vault item row.
func (r *vaultItemRepository) Save(ctx context.Context, item models.VaultItem) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert("vault_items").
		Columns(vaultItemColumns...).
		Values(item.ID, item.UserID, item.ItemType, item.Title, item.EncryptedData, item.CreatedAt, item.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*vaultItemRepository.Save").
			Int64("user_id", item.UserID).
			Str("item_id", item.ID).
			Msg("error saving vault item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetByID retrieves one item scoped to its owner.
func (r *vaultItemRepository) GetByID(ctx context.Context, userID int64, id string) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(vaultItemColumns...).
		From("vault_items").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item models.VaultItem
	row := r.db.QueryRowContext(ctx, query, args...)
	scanErr := row.Scan(&item.ID, &item.UserID, &item.ItemType, &item.Title, &item.EncryptedData, &item.CreatedAt, &item.UpdatedAt)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.VaultItem{}, ErrVaultItemNotFound
		}
		log.Err(scanErr).Str("func", "*vaultItemRepository.GetByID").Str("item_id", id).Msg("error scanning vault item row")
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return item, nil
}

// GetAll retrieves every item owned by the user.
func (r *vaultItemRepository) GetAll(ctx context.Context, userID int64) ([]models.VaultItem, error) {
	return r.selectItems(ctx, sq.Eq{"user_id": userID})
}

// GetAllItems retrieves every stored item across all owners, for the
// background expiry scanner.
func (r *vaultItemRepository) GetAllItems(ctx context.Context) ([]models.VaultItem, error) {
	return r.selectItems(ctx, nil)
}

func (r *vaultItemRepository) selectItems(ctx context.Context, where any) ([]models.VaultItem, error) {
	log := logger.FromContext(ctx)

	q := r.db.builder.
		Select(vaultItemColumns...).
		From("vault_items").
		OrderBy("created_at")
	if where != nil {
		q = q.Where(where)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vaultItemRepository.selectItems").Msg("error executing vault item query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.VaultItem, 0, 16)
	for rows.Next() {
		var item models.VaultItem
		if scanErr := rows.Scan(&item.ID, &item.UserID, &item.ItemType, &item.Title, &item.EncryptedData, &item.CreatedAt, &item.UpdatedAt); scanErr != nil {
			log.Err(scanErr).Str("func", "*vaultItemRepository.selectItems").Msg("error scanning vault item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*vaultItemRepository.selectItems").Msg("error during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// Update applies the non-nil fields of update, always bumping updated_at.
func (r *vaultItemRepository) Update(ctx context.Context, update models.VaultItemUpdate) error {
	log := logger.FromContext(ctx)

	q := r.db.builder.
		Update("vault_items").
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": update.ID, "user_id": update.UserID})

	if update.ItemType != nil {
		q = q.Set("item_type", *update.ItemType)
	}
	if update.Title != nil {
		q = q.Set("title", *update.Title)
	}
	if update.EncryptedData != nil {
		q = q.Set("encrypted_data", *update.EncryptedData)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vaultItemRepository.Update").Str("item_id", update.ID).Msg("error updating vault item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrVaultItemNotFound
	}

	return nil
}

// Delete removes the item scoped to its owner.
func (r *vaultItemRepository) Delete(ctx context.Context, userID int64, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("vault_items").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vaultItemRepository.Delete").Str("item_id", id).Msg("error deleting vault item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrVaultItemNotFound
	}

	return nil
}
