package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/service"
	"github.com/mypasslab/mypass/internal/store"
	"github.com/mypasslab/mypass/internal/utils"
	"github.com/mypasslab/mypass/models"
)

type vaultItemRequest struct {
	ItemType string            `json:"item_type"`
	Title    string            `json:"title"`
	Fields   map[string]string `json:"fields"`
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req vaultItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	item, err := h.services.VaultService.Create(ctx, userID, req.ItemType, req.Title, req.Fields)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during vault item creation")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, map[string]string{"id": item.ID}, http.StatusCreated)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	previews, err := h.services.VaultService.List(ctx, userID)
	if err != nil {
		log.Err(err).Msg("vault listing failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, previews, http.StatusOK)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	preview, err := h.services.VaultService.Get(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrVaultItemNotFound):
			http.Error(w, "vault item not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("vault item lookup failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, preview, http.StatusOK)
}

type vaultItemUpdateRequest struct {
	ItemType *string           `json:"item_type,omitempty"`
	Title    *string           `json:"title,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req vaultItemUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	upd := models.VaultItemUpdate{
		ID:       chi.URLParam(r, "id"),
		UserID:   userID,
		ItemType: req.ItemType,
		Title:    req.Title,
	}

	err := h.services.VaultService.Update(ctx, upd, req.Fields)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrVaultItemNotFound):
			http.Error(w, "vault item not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("vault item update failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	err := h.services.VaultService.Delete(ctx, userID, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrVaultItemNotFound):
			http.Error(w, "vault item not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("vault item delete failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
