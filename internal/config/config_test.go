package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "fitu", cfg.Database.Name)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "@dict.gov.ph", cfg.Auth.InstructorDomain)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
database:
  driver: memory
auth:
  secret: file-secret
  token_ttl: 30m
s3:
  bucket_name: exports
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("AUTH_SECRET", "env-secret")
	t.Setenv("AUTH_HOOK_SECRET", "hook")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "env-secret", cfg.Auth.Secret)
	assert.Equal(t, "hook", cfg.Auth.HookSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.True(t, cfg.S3.Enabled())
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestRequireSecret(t *testing.T) {
	assert.ErrorIs(t, AuthConfig{}.RequireSecret(), ErrAuthSecretMissing)
	assert.NoError(t, AuthConfig{Secret: "s3cret"}.RequireSecret())
}
