package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/models"
)

// uniqueViolationClassifier treats every error as a unique violation, which
// lets the tests exercise the duplicate-email mapping without a live driver.
type uniqueViolationClassifier struct{}

func (uniqueViolationClassifier) IsUniqueViolation(err error) bool { return err != nil }

func testUser() models.User {
	return models.User{
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$...",
		SecQ1:        "First pet?", SecA1: "Rex",
		SecQ2: "Home town?", SecA2: "Springfield",
		SecQ3: "Mother's maiden name?", SecA3: "Miller",
	}
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	user := testUser()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Email, user.PasswordHash,
			user.SecQ1, user.SecA1, user.SecQ2, user.SecA2, user.SecQ3, user.SecA3,
			sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(7)))

	created, err := repo.CreateUser(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.UserID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	db.classifier = uniqueViolationClassifier{}
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("UNIQUE constraint failed: users.email"))

	_, err := repo.CreateUser(context.Background(), testUser())

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestUserRepository_FindUserByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	createdAt := time.Now()

	mock.ExpectQuery("SELECT user_id, email, password_hash, sec_q1, sec_a1, sec_q2, sec_a2, sec_q3, sec_a3, created_at FROM users").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"user_id", "email", "password_hash", "sec_q1", "sec_a1", "sec_q2", "sec_a2", "sec_q3", "sec_a3", "created_at"},
		).AddRow(int64(7), "alice@example.com", "$argon2id$...", "q1", "a1", "q2", "a2", "q3", "a3", createdAt))

	user, err := repo.FindUserByEmail(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, "a3", user.SecA3)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindUserByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT user_id, email, password_hash").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectExec("UPDATE users SET password_hash = \\? WHERE user_id = \\?").
		WithArgs("$argon2id$new", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePassword(context.Background(), 7, "$argon2id$new")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword_UnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectExec("UPDATE users").
		WithArgs("$argon2id$new", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), 99, "$argon2id$new")

	assert.ErrorIs(t, err, ErrNoUserWasFound)
}
