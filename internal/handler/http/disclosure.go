package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/metrics"
	"github.com/mypasslab/mypass/internal/service"
	"github.com/mypasslab/mypass/internal/store"
	"github.com/mypasslab/mypass/internal/utils"
)

type issueTokenRequest struct {
	RecordID  *string `json:"record_id,omitempty"`
	FieldName *string `json:"field_name,omitempty"`
}

// issueToken mints a short-lived single-use disclosure token, optionally
// scoped to one field of one record.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req issueTokenRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Err(err).Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}
	}

	token, err := h.services.DisclosureService.Issue(ctx, userID, req.RecordID, req.FieldName)
	if err != nil {
		log.Err(err).Msg("disclosure token issue failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]any{
		"token":      token.Token,
		"expires_at": token.ExpiresAt,
	}, http.StatusCreated)
}

type revealRequest struct {
	Token     string `json:"token"`
	FieldName string `json:"field_name"`
}

// reveal returns the plaintext value of one masked field.
//
// The unmask quota is consumed before the disclosure token: a rate-limited
// caller is turned away with 429 while their token stays redeemable for a
// later attempt. Only after the quota admits the request is the single-use
// token burned and the field decrypted.
func (h *Handler) reveal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req revealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	recordID := chi.URLParam(r, "id")

	if !h.guard.TryConsumeUnmask() {
		metrics.UnmaskDenied.Inc()
		log.Warn().Int64("user_id", userID).Msg("unmask rate limit exceeded")
		http.Error(w, service.ErrUnmaskRateLimited.Error(), http.StatusTooManyRequests)
		return
	}

	if err := h.services.DisclosureService.Redeem(ctx, req.Token, userID, recordID, req.FieldName); err != nil {
		if errors.Is(err, service.ErrInvalidDisclosureToken) {
			log.Warn().Int64("user_id", userID).Msg("disclosure token rejected")
			http.Error(w, "disclosure token is invalid, expired or already used", http.StatusForbidden)
			return
		}
		log.Err(err).Int64("user_id", userID).Msg("disclosure token redemption failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	value, err := h.services.VaultService.Field(ctx, userID, recordID, req.FieldName)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrVaultItemNotFound):
			http.Error(w, "vault item not found", http.StatusNotFound)
			return
		case errors.Is(err, service.ErrFieldNotFound):
			http.Error(w, "field not found in record", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("field reveal failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, map[string]string{
		"field": req.FieldName,
		"value": value,
	}, http.StatusOK)
}
