package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_EncodedForm(t *testing.T) {
	encoded, err := HashPassword("Secret42")
	require.NoError(t, err)

	parts := strings.Split(encoded, "$")
	require.Len(t, parts, 6)
	assert.Equal(t, "argon2id", parts[1])
	assert.Equal(t, "v=19", parts[2])
	assert.Equal(t, "m=65536,t=1,p=4", parts[3])
}

func TestHashPassword_SaltIsRandom(t *testing.T) {
	first, err := HashPassword("Secret42")
	require.NoError(t, err)
	second, err := HashPassword("Secret42")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	encoded, err := HashPassword("Secret42")
	require.NoError(t, err)

	ok, err := VerifyPassword(encoded, "Secret42")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(encoded, "Wrong42!")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"plain string", "not-a-hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=65536,t=1,p=4"},
		{"bad salt base64", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPassword(tt.encoded, "Secret42")
			assert.ErrorIs(t, err, ErrMalformedPasswordHash)
		})
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Secret42", true},
		{"LongEnough1", true},
		{"short1A", false},          // 7 chars
		{"nouppercase1", false},     // no upper
		{"NoDigitsHere", false},     // no digit
		{"", false},                 // empty
		{"12345678", false},         // digits only
		{"ALLUPPER9", true},         // upper + digit
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrongPassword(tt.password))
		})
	}
}
