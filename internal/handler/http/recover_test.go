package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mypasslab/mypass/internal/recovery"
	"github.com/mypasslab/mypass/internal/service"
	"github.com/mypasslab/mypass/internal/session"
)

func TestRecoverPassword_Success(t *testing.T) {
	rs := &mockRecoveryService{
		resetPasswordFn: func(_ context.Context, email string, answers recovery.Answers, newPassword string) error {
			assert.Equal(t, "alice@example.com", email)
			assert.Equal(t, recovery.Answers{A1: "rex", A2: "kyiv", A3: "smith"}, answers)
			assert.Equal(t, "NewSecret1", newPassword)
			return nil
		},
	}
	h := newTestHandler(&service.Services{RecoveryService: rs}, session.NewGuard(session.Options{}))

	body := `{"email":"alice@example.com","answer1":"rex","answer2":"kyiv","answer3":"smith","new_password":"NewSecret1"}`
	rec := httptest.NewRecorder()
	h.recoverPassword(rec, httptest.NewRequest(http.MethodPost, "/api/user/recover", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "password updated")
}

func TestRecoverPassword_DenialIsUniform401(t *testing.T) {
	rs := &mockRecoveryService{
		resetPasswordFn: func(_ context.Context, _ string, _ recovery.Answers, _ string) error {
			return service.ErrRecoveryDenied
		},
	}
	h := newTestHandler(&service.Services{RecoveryService: rs}, session.NewGuard(session.Options{}))

	body := `{"email":"alice@example.com","answer1":"wrong","answer2":"kyiv","answer3":"smith","new_password":"NewSecret1"}`
	rec := httptest.NewRecorder()
	h.recoverPassword(rec, httptest.NewRequest(http.MethodPost, "/api/user/recover", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "recovery verification failed")
}

func TestRecoverPassword_WeakReplacement(t *testing.T) {
	rs := &mockRecoveryService{
		resetPasswordFn: func(_ context.Context, _ string, _ recovery.Answers, _ string) error {
			return service.ErrWeakPassword
		},
	}
	h := newTestHandler(&service.Services{RecoveryService: rs}, session.NewGuard(session.Options{}))

	body := `{"email":"alice@example.com","answer1":"rex","answer2":"kyiv","answer3":"smith","new_password":"weak"}`
	rec := httptest.NewRecorder()
	h.recoverPassword(rec, httptest.NewRequest(http.MethodPost, "/api/user/recover", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
