package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/mypasslab/mypass/models"
)

const (
	passwordMinLength     = 4
	passwordDefaultLength = 16

	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{};:,.<>?"
)

// passwordService generates random passwords from a crypto/rand source.
type passwordService struct{}

func NewPasswordService() PasswordService {
	return &passwordService{}
}

// Generate produces a password matching spec.
//
// A zero-length spec defaults to 16 characters; lengths below 4 are clamped
// up to 4. When no character class is enabled the generator falls back to
// letters and digits. Every enabled class is guaranteed at least one
// character, then the remainder is drawn from the combined alphabet and the
// result is shuffled so the guaranteed characters do not cluster at the
// front.
func (p *passwordService) Generate(spec models.PasswordSpec) (string, error) {
	if spec.Length == 0 {
		spec.Length = passwordDefaultLength
	}
	if spec.Length < passwordMinLength {
		spec.Length = passwordMinLength
	}

	if !spec.Upper && !spec.Lower && !spec.Digits && !spec.Symbols {
		spec.Upper, spec.Lower, spec.Digits = true, true, true
	}

	var classes []string
	if spec.Upper {
		classes = append(classes, upperChars)
	}
	if spec.Lower {
		classes = append(classes, lowerChars)
	}
	if spec.Digits {
		classes = append(classes, digitChars)
	}
	if spec.Symbols {
		classes = append(classes, symbolChars)
	}

	var alphabet string
	for _, class := range classes {
		alphabet += class
	}

	password := make([]byte, 0, spec.Length)
	for _, class := range classes {
		ch, err := randomChar(class)
		if err != nil {
			return "", err
		}
		password = append(password, ch)
	}
	for len(password) < spec.Length {
		ch, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		password = append(password, ch)
	}

	if err := shuffle(password); err != nil {
		return "", err
	}

	return string(password), nil
}

func randomChar(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, fmt.Errorf("random source failed: %w", err)
	}

	return alphabet[n.Int64()], nil
}

// shuffle is a Fisher-Yates shuffle over the crypto/rand source.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("random source failed: %w", err)
		}
		j := n.Int64()
		b[i], b[j] = b[j], b[i]
	}

	return nil
}
