package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MissingSignKeyRejected(t *testing.T) {
	cfg := &StructuredConfig{}

	err := cfg.validate()

	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestValidate_AppliesDefaults(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.App.TokenSignKey = "k"

	require.NoError(t, cfg.validate())

	assert.Equal(t, DefaultKeyFile, cfg.App.KeyFile)
	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultInactivityTimeout, cfg.Session.InactivityTimeout)
	assert.Equal(t, DefaultUnmaskQuota, cfg.Session.UnmaskQuota)
	assert.Equal(t, DefaultUnmaskWindow, cfg.Session.UnmaskWindow)
	assert.Equal(t, DefaultDisclosureTTL, cfg.Session.DisclosureTTL)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultPurgeInterval, cfg.Workers.TokenPurgeInterval)
	assert.Equal(t, DefaultScanInterval, cfg.Workers.ExpiryScanInterval)
}

func TestValidate_ExplicitValuesKept(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.App.TokenSignKey = "k"
	cfg.Session.InactivityTimeout = 5 * time.Minute
	cfg.Session.UnmaskQuota = 10
	cfg.Server.HTTPAddress = "localhost:9090"

	require.NoError(t, cfg.validate())

	assert.Equal(t, 5*time.Minute, cfg.Session.InactivityTimeout)
	assert.Equal(t, 10, cfg.Session.UnmaskQuota)
	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddress)
}

func TestValidate_InMemoryDSNRejected(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.App.TokenSignKey = "k"
	cfg.Storage.DB.DSN = "file::memory:?cache=shared"

	err := cfg.validate()

	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}
