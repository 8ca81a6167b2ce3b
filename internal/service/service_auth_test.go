package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/store"
	"github.com/mypasslab/mypass/internal/utils"
	"github.com/mypasslab/mypass/models"
)

type mockUserRepository struct {
	createUserFn      func(ctx context.Context, user models.User) (models.User, error)
	findByEmailFn     func(ctx context.Context, email string) (models.User, error)
	updatePasswordFn  func(ctx context.Context, userID int64, passwordHash string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, userID, passwordHash)
	}
	return nil
}

func newTestAuthService(repo *mockUserRepository) *authService {
	return &authService{
		userRepository: repo,
		tokenSignKey:   "test-sign-key",
		tokenIssuer:    "mypass-test",
		tokenDuration:  time.Hour,
		logger:         logger.Nop(),
	}
}

func validRegistration() models.User {
	return models.User{
		Email:    "alice@example.com",
		Password: "Secret42",
		SecQ1:    "First pet?", SecA1: "Rex",
		SecQ2: "Home town?", SecA2: "Springfield",
		SecQ3: "Mother's maiden name?", SecA3: "Miller",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	var stored models.User
	repo := &mockUserRepository{
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			stored = user
			user.UserID = 1
			return user, nil
		},
	}
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), validRegistration())

	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)

	// plaintext never reaches storage, the Argon2id hash verifies
	assert.Empty(t, stored.Password)
	ok, err := utils.VerifyPassword(stored.PasswordHash, "Secret42")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthService_Register_NormalisesEmail(t *testing.T) {
	var stored models.User
	repo := &mockUserRepository{
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			stored = user
			return user, nil
		},
	}
	svc := newTestAuthService(repo)

	user := validRegistration()
	user.Email = "  Alice@Example.COM "

	_, err := svc.Register(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", stored.Email)
}

func TestAuthService_Register_InvalidData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.User)
	}{
		{"empty email", func(u *models.User) { u.Email = "" }},
		{"empty password", func(u *models.User) { u.Password = "" }},
		{"missing first question", func(u *models.User) { u.SecQ1 = "" }},
		{"blank second answer", func(u *models.User) { u.SecA2 = "   " }},
		{"missing third answer", func(u *models.User) { u.SecA3 = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(&mockUserRepository{})
			user := validRegistration()
			tt.mutate(&user)

			_, err := svc.Register(context.Background(), user)

			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})
	user := validRegistration()
	user.Password = "weakpass"

	_, err := svc.Register(context.Background(), user)

	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), validRegistration())

	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := utils.HashPassword("Secret42")
	require.NoError(t, err)

	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			assert.Equal(t, "alice@example.com", email)
			return models.User{UserID: 1, Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(repo)

	user, err := svc.Login(context.Background(), "Alice@Example.com", "Secret42")

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("Secret42")
	require.NoError(t, err)

	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			return models.User{UserID: 1, Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(repo)

	_, err = svc.Login(context.Background(), "alice@example.com", "Wrong42!")

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.Login(context.Background(), "nobody@example.com", "Secret42")

	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.Login(context.Background(), "", "Secret42")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Login(context.Background(), "alice@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	token, err := svc.CreateToken(context.Background(), models.User{UserID: 42})
	require.NoError(t, err)

	userID, err := svc.ParseToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestAuthService_ParseToken_InvalidNormalised(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.ParseToken(context.Background(), "garbage")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
