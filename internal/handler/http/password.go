package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/service"
	"github.com/mypasslab/mypass/internal/utils"
	"github.com/mypasslab/mypass/models"
)

func (h *Handler) generatePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var spec models.PasswordSpec
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
			log.Err(err).Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}
	}

	password, err := h.services.PasswordService.Generate(spec)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			http.Error(w, "invalid password spec", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("password generation failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, map[string]string{"password": password}, http.StatusOK)
}
