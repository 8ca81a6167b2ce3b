package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/recovery"
	"github.com/mypasslab/mypass/internal/service"
	"github.com/mypasslab/mypass/internal/utils"
)

type recoverRequest struct {
	Email       string `json:"email"`
	Answer1     string `json:"answer1"`
	Answer2     string `json:"answer2"`
	Answer3     string `json:"answer3"`
	NewPassword string `json:"new_password"`
}

// recoverPassword resets a forgotten password after verifying all three
// security answers. Denials are uniform 401s regardless of which check
// failed, so the endpoint does not leak whether the email is registered.
func (h *Handler) recoverPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req recoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	answers := recovery.Answers{A1: req.Answer1, A2: req.Answer2, A3: req.Answer3}
	err := h.services.RecoveryService.ResetPassword(ctx, req.Email, answers, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrWeakPassword):
			http.Error(w, "password must be at least 8 characters with an uppercase letter and a digit", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrRecoveryDenied):
			log.Warn().Str("email", req.Email).Msg("recovery denied")
			http.Error(w, "recovery verification failed", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during password recovery")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, map[string]string{"status": "password updated"}, http.StatusOK)
}
