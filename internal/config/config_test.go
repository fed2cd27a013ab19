package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingDotenv(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "API_KEYS", "ALLOW_ORIGINS", "MENU_PATH", "MAX_QTY_PER_LINE", "MAX_TOTAL_ITEMS", "REDIS_ADDR", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadFile(missingDotenv(t))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, []string{"http://127.0.0.1:5500", "http://localhost:5500"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, PolicyConfig{MaxQtyPerLine: 10, MaxTotalItems: 30}, cfg.Policy)
	assert.Empty(t, cfg.Menu.Path)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "drive:oos", cfg.Redis.OOSKey)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_KEYS", "crew, manager ,")
	t.Setenv("ALLOW_ORIGINS", "https://drive.example.com")
	t.Setenv("MAX_QTY_PER_LINE", "5")
	t.Setenv("MAX_TOTAL_ITEMS", "20")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadFile(missingDotenv(t))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"crew", "manager"}, cfg.Auth.APIKeys)
	assert.Equal(t, []string{"https://drive.example.com"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 5, cfg.Policy.MaxQtyPerLine)
	assert.Equal(t, 20, cfg.Policy.MaxTotalItems)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_Dotenv(t *testing.T) {
	// Setenv registers the restore; the variable must be absent for the file to apply.
	t.Setenv("MENU_PATH", "")
	require.NoError(t, os.Unsetenv("MENU_PATH"))
	t.Setenv("PORT", "7000")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MENU_PATH=/srv/menu.json\nPORT=1234\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/menu.json", cfg.Menu.Path)
	assert.Equal(t, "7000", cfg.Server.Port, "environment wins over the dotenv file")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8000"},
			Auth:     AuthConfig{APIKeys: []string{"crew"}},
			Policy:   PolicyConfig{MaxQtyPerLine: 10, MaxTotalItems: 30},
			Redis:    RedisConfig{OOSKey: "drive:oos"},
			LogLevel: "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "no api keys", mutate: func(c *Config) { c.Auth.APIKeys = nil }, wantErr: true},
		{name: "zero line cap", mutate: func(c *Config) { c.Policy.MaxQtyPerLine = 0 }, wantErr: true},
		{name: "total below line cap", mutate: func(c *Config) { c.Policy.MaxTotalItems = 5 }, wantErr: true},
		{name: "redis without key", mutate: func(c *Config) { c.Redis = RedisConfig{Addr: "localhost:6379"} }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
