package mockapi

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, ":3333", cfg.Addr)
	assert.Equal(t, "/v1", cfg.BasePath)
	assert.Equal(t, 2*time.Minute, cfg.AccessTokenTTL)
	assert.True(t, cfg.Seed)
}

func TestLoadConfig_JSONThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"addr": ":9000",
		"secret_key": "from-file",
		"access_token_ttl": "30s",
		"seed": false
	}`), 0o600))

	cfg, err := LoadConfig([]string{"-c", path, "-k", "from-flag", "-rt", "1h", "-unknown", "x"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "from-flag", cfg.SecretKey)
	assert.Equal(t, 30*time.Second, cfg.AccessTokenTTL)
	assert.Equal(t, time.Hour, cfg.RefreshTokenTTL)
	assert.False(t, cfg.Seed)
}

func TestLoadConfig_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"-c", filepath.Join(t.TempDir(), "nope.json")}},
		{"bad json", []string{"-c", bad}},
		{"empty secret", []string{"-k", ""}},
		{"zero ttl", []string{"-at", "0s"}},
		{"bad duration", []string{"-at", "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.args)
			assert.Error(t, err)
		})
	}
}
