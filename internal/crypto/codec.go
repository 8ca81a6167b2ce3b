package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/metrics"
)

// Codec serializes a vault field mapping to canonical JSON and seals it
// with AES-256-GCM against the KeyStore key. The stored blob layout is
// base64(nonce ‖ ciphertext), nonce first so Decrypt can split it out.
type Codec struct {
	keys   *KeyStore
	logger *logger.Logger
}

// NewCodec constructs a Codec over the given key store.
func NewCodec(keys *KeyStore, logger *logger.Logger) *Codec {
	return &Codec{
		keys:   keys,
		logger: logger,
	}
}

// Encrypt serializes fields and returns the encrypted record blob.
//
// Serialization cannot fail for a string map, but the contract is kept
// anyway: on a marshalling error the codec falls back to a best-effort
// string rendering rather than surfacing the error. Only key-store and
// CSPRNG failures are returned.
func (c *Codec) Encrypt(fields map[string]string) (string, error) {
	plaintext, err := json.Marshal(fields)
	if err != nil {
		plaintext = []byte(fmt.Sprint(fields))
	}

	gcm, err := c.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	blob := append(nonce, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt opens an encrypted record blob and returns the field mapping.
//
// It fails closed: any decoding, length, authentication-tag, or
// unmarshalling error yields an empty (non-nil) mapping instead of an
// error, so corrupted or tampered records degrade to "no data" rather than
// breaking request handling. Each such failure is logged and counted in
// the decrypt-failure metric so corruption stays observable.
func (c *Codec) Decrypt(blob string) map[string]string {
	if blob == "" {
		return map[string]string{}
	}

	fields, err := c.open(blob)
	if err != nil {
		c.logger.Warn().Err(err).Msg("payload decryption failed, returning empty data")
		metrics.DecryptFailures.Inc()
		return map[string]string{}
	}

	return fields
}

func (c *Codec) open(blob string) (map[string]string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	gcm, err := c.aead()
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(raw) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt payload: %w", err)
	}

	fields := map[string]string{}
	if err := json.Unmarshal(plaintext, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	return fields, nil
}

func (c *Codec) aead() (cipher.AEAD, error) {
	key, err := c.keys.Key()
	if err != nil {
		return nil, err
	}
	defer zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
