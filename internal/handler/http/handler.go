package http

import (
	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/service"
	"github.com/mypasslab/mypass/internal/session"
)

type Handler struct {
	services *service.Services
	guard    *session.Guard

	logger *logger.Logger
}

func NewHandler(services *service.Services, guard *session.Guard, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		guard:    guard,
		logger:   logger,
	}
}
