package models

import "time"

// DisclosureToken authorizes exactly one full-value read of one vault field
// by one user. A token that is used or past ExpiresAt is permanently invalid;
// tokens are never reused or resurrected.
//
// RecordID and FieldName are optional scope narrowing: when nil the token is
// valid for any record/field of its owner, matching the unmask_tokens schema
// where both columns are nullable.
type DisclosureToken struct {
	Token     string    `json:"token"`
	OwnerID   int64     `json:"-"`
	RecordID  *string   `json:"record_id,omitempty"`
	FieldName *string   `json:"field_name,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *DisclosureToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
