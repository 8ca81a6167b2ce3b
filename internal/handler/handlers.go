package handler

import (
	"github.com/mypasslab/mypass/internal/config"
	"github.com/mypasslab/mypass/internal/handler/http"
	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/service"
	"github.com/mypasslab/mypass/internal/session"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, guard *session.Guard, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, guard, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
