package config

import (
	"strings"
	"time"
)

// Fallback values applied by validate for everything left unset by env,
// flags, and the JSON file.
const (
	DefaultHTTPAddress       = ":8080"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultDSN               = "mypass.db"
	DefaultKeyFile           = "secret.key"
	DefaultTokenIssuer       = "mypass"
	DefaultTokenDuration     = time.Hour
	DefaultInactivityTimeout = 60 * time.Second
	DefaultUnmaskQuota       = 5
	DefaultUnmaskWindow      = 60 * time.Second
	DefaultDisclosureTTL     = 30 * time.Second
	DefaultPurgeInterval     = time.Minute
	DefaultScanInterval      = time.Hour
)

// validate checks the final merged [StructuredConfig] and fills in defaults
// for every field left at its zero value.
//
// Returns an error only for settings that have no safe default, currently
// the token signing key.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.KeyFile == "" {
		cfg.App.KeyFile = DefaultKeyFile
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration <= 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}

	if cfg.Session.InactivityTimeout <= 0 {
		cfg.Session.InactivityTimeout = DefaultInactivityTimeout
	}
	if cfg.Session.UnmaskQuota <= 0 {
		cfg.Session.UnmaskQuota = DefaultUnmaskQuota
	}
	if cfg.Session.UnmaskWindow <= 0 {
		cfg.Session.UnmaskWindow = DefaultUnmaskWindow
	}
	if cfg.Session.DisclosureTTL <= 0 {
		cfg.Session.DisclosureTTL = DefaultDisclosureTTL
	}

	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDSN
	}
	if strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}

	if cfg.Workers.TokenPurgeInterval <= 0 {
		cfg.Workers.TokenPurgeInterval = DefaultPurgeInterval
	}
	if cfg.Workers.ExpiryScanInterval <= 0 {
		cfg.Workers.ExpiryScanInterval = DefaultScanInterval
	}

	return nil
}
