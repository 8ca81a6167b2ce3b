package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/recovery"
	"github.com/mypasslab/mypass/internal/store"
	"github.com/mypasslab/mypass/internal/utils"
)

// recoveryService implements password recovery through security questions.
type recoveryService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

func NewRecoveryService(userRepository store.UserRepository, logger *logger.Logger) RecoveryService {
	return &recoveryService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// ResetPassword replaces a user's password after verifying all three security
// answers.
//
// Every denial path collapses to ErrRecoveryDenied: unknown email, a wrong
// answer at any step, all look identical to the caller so the endpoint does
// not reveal which part failed. Weak replacement passwords are reported
// separately as ErrWeakPassword since by then the caller has already proven
// ownership.
func (r *recoveryService) ResetPassword(ctx context.Context, email string, answers recovery.Answers, newPassword string) error {
	log := logger.FromContext(ctx)

	if email == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	user, err := r.userRepository.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		log.Warn().Str("email", email).Msg("recovery attempt for unknown email")
		return ErrRecoveryDenied
	}

	stored := recovery.Answers{A1: user.SecA1, A2: user.SecA2, A3: user.SecA3}
	if !recovery.VerifyAnswers(stored, answers) {
		log.Warn().Int64("id", user.UserID).Msg("recovery answers rejected")
		return ErrRecoveryDenied
	}

	if !utils.IsStrongPassword(newPassword) {
		return ErrWeakPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := r.userRepository.UpdatePassword(ctx, user.UserID, hash); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	log.Info().Int64("id", user.UserID).Msg("password reset via recovery")
	return nil
}
