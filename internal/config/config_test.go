package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017/afetlink", cfg.MongoURI)
	assert.Equal(t, "http://127.0.0.1:8200", cfg.VaultAddr)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "Production")
	t.Setenv("MONGODB_URI", "mongodb://db:27017/relief")
	t.Setenv("VAULT_ADDR", "https://vault.internal:8200")
	t.Setenv("VAULT_TOKEN", "s.token")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://www.example.com")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "mongodb://db:27017/relief", cfg.MongoURI)
	assert.Equal(t, "https://vault.internal:8200", cfg.VaultAddr)
	assert.Equal(t, "s.token", cfg.VaultToken)
	assert.Equal(t, []string{"https://app.example.com", "https://www.example.com"}, cfg.AllowedOrigins)
}

func TestLoadMongoURIFallback(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://legacy:27017/afetlink")

	cfg := Load()
	assert.Equal(t, "mongodb://legacy:27017/afetlink", cfg.MongoURI)
}
