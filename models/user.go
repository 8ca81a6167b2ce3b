package models

import "time"

// User is a vault account holder.
//
// PasswordHash stores the Argon2id-encoded password; the raw password never
// reaches the persistence layer. The three security question/answer pairs are
// used by the account-recovery flow and are compared case-insensitively after
// whitespace trimming.
type User struct {
	UserID       int64     `json:"user_id"`
	Email        string    `json:"email"`
	Password     string    `json:"password,omitempty"` // inbound only, never persisted
	PasswordHash string    `json:"-"`
	SecQ1        string    `json:"sec_q1,omitempty"`
	SecA1        string    `json:"sec_a1,omitempty"`
	SecQ2        string    `json:"sec_q2,omitempty"`
	SecA2        string    `json:"sec_a2,omitempty"`
	SecQ3        string    `json:"sec_q3,omitempty"`
	SecA3        string    `json:"sec_a3,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
