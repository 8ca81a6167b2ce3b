package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{"string form", `"30s"`, 30 * time.Second},
		{"composite string", `"1h30m"`, 90 * time.Minute},
		{"numeric nanoseconds", `1000000000`, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, d.UnmarshalJSON([]byte(tt.input)))
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_UnmarshalJSON_Invalid(t *testing.T) {
	var d Duration
	assert.Error(t, d.UnmarshalJSON([]byte(`"not-a-duration"`)))
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	payload := `{
		"app": {"token_sign_key": "k", "token_duration": "2h", "key_file": "/tmp/key"},
		"session": {"inactivity_timeout": "90s", "unmask_quota": 3, "disclosure_ttl": "15s"},
		"storage": {"db": {"dsn": "postgres://u:p@localhost:5432/mypass"}},
		"server": {"http_address": "localhost:8081", "request_timeout": "45s"},
		"workers": {"token_purge_interval": "30s"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	cfg, err := parseJSON(path)

	require.NoError(t, err)
	assert.Equal(t, "k", cfg.App.TokenSignKey)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "/tmp/key", cfg.App.KeyFile)
	assert.Equal(t, 90*time.Second, cfg.Session.InactivityTimeout)
	assert.Equal(t, 3, cfg.Session.UnmaskQuota)
	assert.Equal(t, 15*time.Second, cfg.Session.DisclosureTTL)
	assert.Equal(t, "postgres://u:p@localhost:5432/mypass", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.Workers.TokenPurgeInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	_, err := parseJSON(path)
	assert.Error(t, err)
}
