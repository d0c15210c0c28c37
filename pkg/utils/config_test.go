package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, StorePostgres, config.App.Store)
	assert.Equal(t, 168, config.JWT.ExpiryHours)
	assert.Equal(t, int32(10), config.Database.MaxConns)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, config.CORS.AllowedOrigins)
}

func TestLoadConfig_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE", "MEMORY")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, config.App.Store)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from-file\nPORT=9000\nCORS_ALLOWED_ORIGINS=https://shop.example.com, ,https://admin.example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PORT", "7000")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", config.JWT.Secret)
	assert.Equal(t, "7000", config.App.Port)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, config.CORS.AllowedOrigins)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App: AppConfig{Store: StoreMemory},
			JWT: JWTConfig{Secret: "x", ExpiryHours: 1},
		}
	}

	require.NoError(t, valid().Validate())

	noSecret := valid()
	noSecret.JWT.Secret = ""
	assert.ErrorContains(t, noSecret.Validate(), "JWT_SECRET")

	badExpiry := valid()
	badExpiry.JWT.ExpiryHours = 0
	assert.ErrorContains(t, badExpiry.Validate(), "JWT_EXPIRY_HOURS")

	badStore := valid()
	badStore.App.Store = "redis"
	assert.ErrorContains(t, badStore.Validate(), "STORE")
}
