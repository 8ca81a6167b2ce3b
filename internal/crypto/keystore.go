// Package crypto implements the encryption-at-rest layer of mypass: the
// process-wide key store and the payload codec that seals vault field
// mappings with AES-256-GCM.
package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/mypasslab/mypass/internal/logger"
)

// KeySize is the length of the symmetric key in bytes (AES-256).
const KeySize = 32

// ErrMalformedKeyFile is returned when the persisted key file exists but
// does not contain exactly KeySize bytes.
var ErrMalformedKeyFile = errors.New("malformed key file")

// KeyStore loads or generates the single symmetric key used process-wide
// and keeps it sealed in a memguard enclave between operations. The raw key
// only exists in regular memory for the duration of one encrypt/decrypt.
type KeyStore struct {
	path   string
	logger *logger.Logger

	mu      sync.Mutex
	enclave *memguard.Enclave
}

// NewKeyStore constructs a KeyStore backed by the key file at path.
// The key is not touched until LoadOrCreate is called.
func NewKeyStore(path string, logger *logger.Logger) *KeyStore {
	return &KeyStore{
		path:   path,
		logger: logger,
	}
}

// LoadOrCreate reads the persisted key, generating and persisting a fresh
// random key first if no file exists. Repeated calls within a process return
// without touching the file again.
//
// Creation uses O_CREATE|O_EXCL, so two processes (or goroutines) racing on
// first startup cannot overwrite each other: the loser of the create race
// discards its candidate key and re-reads the winner's file.
func (s *KeyStore) LoadOrCreate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enclave != nil {
		return nil
	}

	key, err := os.ReadFile(s.path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		key, err = s.createKeyFile()
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("read key file: %w", err)
	}

	if len(key) != KeySize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrMalformedKeyFile, len(key), KeySize)
	}

	// NewEnclave wipes its input, so the plaintext key does not linger here.
	s.enclave = memguard.NewEnclave(key)
	s.logger.Debug().Str("path", s.path).Msg("encryption key ready")

	return nil
}

// Key returns a copy of the symmetric key. The caller should zero the slice
// when done. Returns an error if LoadOrCreate has not succeeded yet or the
// enclave cannot be opened.
func (s *KeyStore) Key() ([]byte, error) {
	s.mu.Lock()
	enclave := s.enclave
	s.mu.Unlock()

	if enclave == nil {
		return nil, errors.New("key store is not initialized")
	}

	buf, err := enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("open key enclave: %w", err)
	}
	defer buf.Destroy()

	key := make([]byte, KeySize)
	copy(key, buf.Bytes())

	return key, nil
}

func (s *KeyStore) createKeyFile() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			// Lost the creation race: another starter persisted a key
			// between our read and create. Use theirs.
			return os.ReadFile(s.path)
		}
		return nil, fmt.Errorf("create key file: %w", err)
	}

	if _, err := f.Write(key); err != nil {
		f.Close()
		return nil, fmt.Errorf("write key file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close key file: %w", err)
	}

	s.logger.Info().Str("path", s.path).Msg("generated new encryption key")

	return key, nil
}
