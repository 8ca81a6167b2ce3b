package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/models"
)

// tokenRepository implements [TokenRepository] against the "unmask_tokens"
// table. The single-use guarantee lives here: MarkUsed is an UPDATE guarded
// by "used = FALSE" so that of any number of concurrent redeemers exactly
// one observes a row flip, all others get ErrTokenAlreadyUsed.
type tokenRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewTokenRepository constructs a [TokenRepository] backed by the provided
// database connection and logger.
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating disclosure token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists a freshly issued token. Failures propagate as hard
// errors: silently losing the row would detach the token from the
// single-use bookkeeping.
func (r *tokenRepository) Insert(ctx context.Context, token models.DisclosureToken) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert("unmask_tokens").
		Columns("token", "owner_id", "record_id", "field_name", "expires_at", "used", "created_at").
		Values(token.Token, token.OwnerID, token.RecordID, token.FieldName, token.ExpiresAt, token.Used, token.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*tokenRepository.Insert").
			Int64("owner_id", token.OwnerID).
			Msg("error inserting disclosure token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Find returns the unused token matching the token string and owner.
// Used and absent tokens are both reported as ErrTokenNotFound, leaving no
// oracle to distinguish them.
func (r *tokenRepository) Find(ctx context.Context, tokenString string, ownerID int64) (models.DisclosureToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("token", "owner_id", "record_id", "field_name", "expires_at", "used", "created_at").
		From("unmask_tokens").
		Where(sq.Eq{"token": tokenString, "owner_id": ownerID, "used": false}).
		ToSql()
	if err != nil {
		return models.DisclosureToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token models.DisclosureToken
	row := r.db.QueryRowContext(ctx, query, args...)
	scanErr := row.Scan(
		&token.Token,
		&token.OwnerID,
		&token.RecordID,
		&token.FieldName,
		&token.ExpiresAt,
		&token.Used,
		&token.CreatedAt,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.DisclosureToken{}, ErrTokenNotFound
		}
		log.Err(scanErr).Str("func", "*tokenRepository.Find").Msg("error scanning disclosure token row")
		return models.DisclosureToken{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return token, nil
}

// MarkUsed performs the compare-and-swap that consumes a token. The WHERE
// clause carries "used = FALSE", so the flip succeeds for exactly one
// caller; RowsAffected distinguishes the winner from everyone else.
func (r *tokenRepository) MarkUsed(ctx context.Context, tokenString string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update("unmask_tokens").
		Set("used", true).
		Where(sq.Eq{"token": tokenString, "used": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.MarkUsed").Msg("error marking disclosure token used")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		// Either the row never existed or another redeemer won the race.
		exists, existsErr := r.exists(ctx, tokenString)
		if existsErr != nil {
			return existsErr
		}
		if exists {
			return ErrTokenAlreadyUsed
		}
		return ErrTokenNotFound
	}

	return nil
}

// PurgeExpired deletes every token past its expiry, keeping the table small.
func (r *tokenRepository) PurgeExpired(ctx context.Context, now time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("unmask_tokens").
		Where(sq.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*tokenRepository.PurgeExpired").Msg("error purging expired disclosure tokens")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *tokenRepository) exists(ctx context.Context, tokenString string) (bool, error) {
	query, args, err := r.db.builder.
		Select("COUNT(*)").
		From("unmask_tokens").
		Where(sq.Eq{"token": tokenString}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count > 0, nil
}
