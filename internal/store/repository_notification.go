package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/models"
)

// notificationRepository implements [NotificationRepository] against the
// "notifications" table.
type notificationRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewNotificationRepository constructs a [NotificationRepository] backed by
// the provided database connection and logger.
func NewNotificationRepository(db *DB, logger *logger.Logger) NotificationRepository {
	logger.Debug().Msg("creating notification repository")
	return &notificationRepository{
		db:     db,
		logger: logger,
	}
}

// Add inserts one notification row.
func (r *notificationRepository) Add(ctx context.Context, n models.Notification) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert("notifications").
		Columns("user_id", "content", "is_read", "created_at").
		Values(n.UserID, n.Content, n.IsRead, n.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*notificationRepository.Add").Int64("user_id", n.UserID).Msg("error adding notification")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetUnread returns unread notifications for the user, newest first.
func (r *notificationRepository) GetUnread(ctx context.Context, userID int64) ([]models.Notification, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("id", "user_id", "content", "is_read", "created_at").
		From("notifications").
		Where(sq.Eq{"user_id": userID, "is_read": false}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*notificationRepository.GetUnread").Int64("user_id", userID).Msg("error querying notifications")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Notification, 0, 8)
	for rows.Next() {
		var n models.Notification
		if scanErr := rows.Scan(&n.ID, &n.UserID, &n.Content, &n.IsRead, &n.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		notes = append(notes, n)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return notes, nil
}

// MarkAllRead flags every unread notification of the user as read.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*notificationRepository.MarkAllRead").Int64("user_id", userID).Msg("error marking notifications read")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// HasUnread reports whether an identical unread notification already exists.
func (r *notificationRepository) HasUnread(ctx context.Context, userID int64, content string) (bool, error) {
	query, args, err := r.db.builder.
		Select("COUNT(*)").
		From("notifications").
		Where(sq.Eq{"user_id": userID, "content": content, "is_read": false}).
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
