package models

import "time"

// VaultItem is one stored secret record. The field mapping entered by the
// user exists in plaintext only inside a request; at rest it lives in
// EncryptedData as an opaque AES-GCM blob produced by the payload codec.
type VaultItem struct {
	ID            string    `json:"id"`
	UserID        int64     `json:"-"`
	ItemType      string    `json:"item_type"`
	Title         string    `json:"title"`
	EncryptedData string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// VaultItemUpdate carries a partial update for a vault item. Nil pointer
// fields are left unchanged by the persistence layer.
type VaultItemUpdate struct {
	ID            string
	UserID        int64
	ItemType      *string
	Title         *string
	EncryptedData *string
}

// VaultItemPreview is the masked, display-safe projection of a vault item.
// Preview is the joined "key: value; ..." form, Fields the field-keyed form.
// Both carry masked values for sensitive fields and are never persisted.
type VaultItemPreview struct {
	ID       string            `json:"id"`
	ItemType string            `json:"item_type"`
	Title    string            `json:"title"`
	Preview  string            `json:"preview"`
	Fields   map[string]string `json:"fields"`
}
