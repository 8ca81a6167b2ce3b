package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mypasslab/mypass/internal/config"
	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/metrics"
	"github.com/mypasslab/mypass/internal/store"
	"github.com/mypasslab/mypass/models"
)

// disclosureTokenBytes is the entropy of a disclosure token before encoding.
const disclosureTokenBytes = 32

// disclosureService issues and redeems short-lived single-use tokens that
// authorise revealing one masked field. Expired tokens are swept from storage
// before every issue and lookup, so a token past its TTL can never validate.
type disclosureService struct {
	tokenRepository store.TokenRepository
	ttl             time.Duration
	now             func() time.Time
	logger          *logger.Logger
}

func NewDisclosureService(tokenRepository store.TokenRepository, cfg config.Session, logger *logger.Logger) DisclosureService {
	return &disclosureService{
		tokenRepository: tokenRepository,
		ttl:             cfg.DisclosureTTL,
		now:             time.Now,
		logger:          logger,
	}
}

// Issue mints a new disclosure token for ownerID.
//
// recordID and fieldName optionally scope the token to a single field of a
// single record; a nil scope produces a token valid for any reveal by the
// same owner. The token string is 32 bytes of CSPRNG output, URL-safe
// base64 without padding.
func (d *disclosureService) Issue(ctx context.Context, ownerID int64, recordID *string, fieldName *string) (models.DisclosureToken, error) {
	log := logger.FromContext(ctx)

	if ownerID == 0 {
		return models.DisclosureToken{}, ErrInvalidDataProvided
	}

	now := d.now()
	if err := d.tokenRepository.PurgeExpired(ctx, now); err != nil {
		log.Err(err).Msg("expired token purge failed")
		return models.DisclosureToken{}, fmt.Errorf("expired token purge failed: %w", err)
	}

	raw := make([]byte, disclosureTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return models.DisclosureToken{}, fmt.Errorf("token entropy unavailable: %w", err)
	}

	token := models.DisclosureToken{
		Token:     base64.RawURLEncoding.EncodeToString(raw),
		OwnerID:   ownerID,
		RecordID:  recordID,
		FieldName: fieldName,
		ExpiresAt: now.Add(d.ttl),
		CreatedAt: now,
	}

	if err := d.tokenRepository.Insert(ctx, token); err != nil {
		log.Err(err).Int64("owner_id", ownerID).Msg("disclosure token insert failed")
		return models.DisclosureToken{}, fmt.Errorf("disclosure token insert failed: %w", err)
	}

	metrics.DisclosureIssued.Inc()
	return token, nil
}

// Validate checks that token exists, belongs to ownerID, is unused, and has
// not expired. The token stays redeemable afterwards.
//
// All failures collapse to ErrInvalidDisclosureToken.
func (d *disclosureService) Validate(ctx context.Context, token string, ownerID int64) (models.DisclosureToken, error) {
	log := logger.FromContext(ctx)

	now := d.now()
	if err := d.tokenRepository.PurgeExpired(ctx, now); err != nil {
		log.Err(err).Msg("expired token purge failed")
		return models.DisclosureToken{}, fmt.Errorf("expired token purge failed: %w", err)
	}

	found, err := d.tokenRepository.Find(ctx, token, ownerID)
	if err != nil {
		metrics.DisclosureRejected.Inc()
		return models.DisclosureToken{}, ErrInvalidDisclosureToken
	}

	if found.Expired(now) {
		metrics.DisclosureRejected.Inc()
		return models.DisclosureToken{}, ErrInvalidDisclosureToken
	}

	return found, nil
}

// Redeem consumes the token for a reveal of fieldName on recordID.
//
// Scope checks run first: a token bound to a record or field rejects any
// other target; field names compare case-insensitively, matching field
// lookup. Consumption is a compare-and-swap in storage, so two concurrent
// redemptions of the same token cannot both succeed. A storage failure
// during consumption propagates as a wrapped error, not as an invalid
// token.
func (d *disclosureService) Redeem(ctx context.Context, token string, ownerID int64, recordID string, fieldName string) error {
	log := logger.FromContext(ctx)

	found, err := d.Validate(ctx, token, ownerID)
	if err != nil {
		return err
	}

	if found.RecordID != nil && *found.RecordID != recordID {
		metrics.DisclosureRejected.Inc()
		return ErrInvalidDisclosureToken
	}
	if found.FieldName != nil && !strings.EqualFold(*found.FieldName, fieldName) {
		metrics.DisclosureRejected.Inc()
		return ErrInvalidDisclosureToken
	}

	if err := d.tokenRepository.MarkUsed(ctx, token); err != nil {
		if errors.Is(err, store.ErrTokenAlreadyUsed) || errors.Is(err, store.ErrTokenNotFound) {
			log.Warn().Int64("owner_id", ownerID).Msg("disclosure token consumption lost")
			metrics.DisclosureRejected.Inc()
			return ErrInvalidDisclosureToken
		}
		log.Err(err).Int64("owner_id", ownerID).Msg("disclosure token consumption failed")
		return fmt.Errorf("disclosure token consumption failed: %w", err)
	}

	metrics.DisclosureRedeemed.Inc()
	return nil
}
