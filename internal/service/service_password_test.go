package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mypasslab/mypass/models"
)

func TestPasswordService_Generate_DefaultSpec(t *testing.T) {
	svc := NewPasswordService()

	password, err := svc.Generate(models.PasswordSpec{})

	require.NoError(t, err)
	assert.Len(t, password, 16)
	assert.True(t, strings.ContainsAny(password, upperChars))
	assert.True(t, strings.ContainsAny(password, lowerChars))
	assert.True(t, strings.ContainsAny(password, digitChars))
}

func TestPasswordService_Generate_RespectsLength(t *testing.T) {
	svc := NewPasswordService()

	for _, length := range []int{4, 8, 32, 64} {
		password, err := svc.Generate(models.PasswordSpec{Length: length, Lower: true})
		require.NoError(t, err)
		assert.Len(t, password, length)
	}
}

func TestPasswordService_Generate_ShortLengthClampedToMinimum(t *testing.T) {
	svc := NewPasswordService()

	for _, length := range []int{1, 2, 3} {
		password, err := svc.Generate(models.PasswordSpec{Length: length, Lower: true})
		require.NoError(t, err)
		assert.Len(t, password, passwordMinLength)
	}
}

func TestPasswordService_Generate_EveryEnabledClassRepresented(t *testing.T) {
	svc := NewPasswordService()

	// smallest possible length forces one character per class
	for i := 0; i < 20; i++ {
		password, err := svc.Generate(models.PasswordSpec{
			Length: 4,
			Upper:  true, Lower: true, Digits: true, Symbols: true,
		})
		require.NoError(t, err)
		assert.True(t, strings.ContainsAny(password, upperChars), password)
		assert.True(t, strings.ContainsAny(password, lowerChars), password)
		assert.True(t, strings.ContainsAny(password, digitChars), password)
		assert.True(t, strings.ContainsAny(password, symbolChars), password)
	}
}

func TestPasswordService_Generate_OnlyEnabledClasses(t *testing.T) {
	svc := NewPasswordService()

	password, err := svc.Generate(models.PasswordSpec{Length: 32, Digits: true})

	require.NoError(t, err)
	for _, r := range password {
		assert.Contains(t, digitChars, string(r))
	}
}

func TestPasswordService_Generate_Unique(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.Generate(models.PasswordSpec{Length: 32, Lower: true, Digits: true})
	require.NoError(t, err)
	second, err := svc.Generate(models.PasswordSpec{Length: 32, Lower: true, Digits: true})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
