package workers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mypasslab/mypass/internal/crypto"
	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/store"
	"github.com/mypasslab/mypass/models"
)

// expiryHorizon is how far ahead the scanner warns about expiring fields.
const expiryHorizon = 30 * 24 * time.Hour

// expiryDateLayouts are the date formats accepted in expiry fields, tried in
// order.
var expiryDateLayouts = []string{
	"2006-01-02",
	"01/2006",
	"01/06",
	time.RFC3339,
}

// expiryScanWorker walks all vault items on a timer, decrypts each payload,
// and creates a notification for fields that look like expiry dates falling
// within the horizon. Items that fail to decrypt are skipped; the codec
// already logs and counts those.
type expiryScanWorker struct {
	ctx           context.Context
	vault         store.VaultItemRepository
	notifications store.NotificationRepository
	codec         *crypto.Codec
	interval      time.Duration
	now           func() time.Time
	logger        *logger.Logger
}

func newExpiryScanWorker(ctx context.Context, vault store.VaultItemRepository, notifications store.NotificationRepository, codec *crypto.Codec, interval time.Duration, logger *logger.Logger) *expiryScanWorker {
	return &expiryScanWorker{
		ctx:           ctx,
		vault:         vault,
		notifications: notifications,
		codec:         codec,
		interval:      interval,
		now:           time.Now,
		logger:        logger,
	}
}

func (w *expiryScanWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info().Msg("expiry scan worker stopped")
				return
			case <-ticker.C:
				w.runOnce(w.ctx)
			}
		}
	}()
}

func (w *expiryScanWorker) runOnce(ctx context.Context) {
	items, err := w.vault.GetAllItems(ctx)
	if err != nil {
		w.logger.Err(err).Msg("expiry scan: vault listing failed")
		return
	}

	now := w.now()
	for _, item := range items {
		fields := w.codec.Decrypt(item.EncryptedData)
		for name, value := range fields {
			if !expiryField(name) {
				continue
			}

			expiresAt, ok := parseExpiryDate(value)
			if !ok {
				continue
			}

			if expiresAt.Before(now) || expiresAt.Sub(now) <= expiryHorizon {
				w.notify(ctx, item, name, expiresAt, now)
			}
		}
	}
}

func (w *expiryScanWorker) notify(ctx context.Context, item models.VaultItem, fieldName string, expiresAt time.Time, now time.Time) {
	var content string
	if expiresAt.Before(now) {
		content = fmt.Sprintf("%q: field %q expired on %s", item.Title, fieldName, expiresAt.Format("2006-01-02"))
	} else {
		content = fmt.Sprintf("%q: field %q expires on %s", item.Title, fieldName, expiresAt.Format("2006-01-02"))
	}

	exists, err := w.notifications.HasUnread(ctx, item.UserID, content)
	if err != nil {
		w.logger.Err(err).Str("item_id", item.ID).Msg("expiry scan: notification dedupe check failed")
		return
	}
	if exists {
		return
	}

	err = w.notifications.Add(ctx, models.Notification{
		UserID:    item.UserID,
		Content:   content,
		CreatedAt: now,
	})
	if err != nil {
		w.logger.Err(err).Str("item_id", item.ID).Msg("expiry scan: notification insert failed")
		return
	}

	w.logger.Info().Str("item_id", item.ID).Str("field", fieldName).Msg("expiry notification created")
}

// expiryField reports whether a decrypted field name denotes an expiry date.
func expiryField(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "expiry") || strings.Contains(lower, "expire") || lower == "exp"
}

// parseExpiryDate tries the known layouts. MM/YY and MM/YYYY values resolve
// to the last day of that month, matching how card expiry dates work.
func parseExpiryDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)

	for _, layout := range expiryDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}

		if layout == "01/2006" || layout == "01/06" {
			parsed = parsed.AddDate(0, 1, -1)
		}

		return parsed, true
	}

	return time.Time{}, false
}
