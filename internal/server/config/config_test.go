package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "0123456789abcdef")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, PhotoStoreSQLite, cfg.PhotoStore)
	assert.Equal(t, time.Minute, cfg.MarkerCacheTTL)
	assert.Equal(t, int64(60<<20), cfg.MaxUploadBytes)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"JWT_SECRET=from-dotenv-secret-123\nLOG_LEVEL=debug\nREDIS_DB=not-a-number\n"), 0o600))
	t.Setenv("HTTP_ADDR", "127.0.0.1:9999")
	// godotenv выставляет переменные процесса, убираем их после теста
	t.Cleanup(func() {
		for _, k := range []string{"JWT_SECRET", "LOG_LEVEL", "REDIS_DB"} {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv-secret-123", cfg.JWTSecret)
	assert.Equal(t, "127.0.0.1:9999", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, 0, cfg.RedisDB, "invalid numbers fall back to the default")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{JWTSecret: "0123456789abcdef", PhotoStore: PhotoStoreSQLite, MaxUploadBytes: 1}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, true},
		{"minio without credentials", func(c *Config) { c.PhotoStore = PhotoStoreMinio }, true},
		{"minio configured", func(c *Config) {
			c.PhotoStore = PhotoStoreMinio
			c.MinioEndpoint, c.MinioAccessKey, c.MinioSecretKey = "localhost:9000", "key", "secret"
		}, false},
		{"unknown store", func(c *Config) { c.PhotoStore = "s3" }, true},
		{"zero upload limit", func(c *Config) { c.MaxUploadBytes = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}
