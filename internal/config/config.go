package config

import (
	"os"
	"strings"
)

type Config struct {
	MongoURI           string
	RedisURI           string
	VaultAddr          string // Vault server address (e.g. http://127.0.0.1:8200)
	VaultToken         string
	JWTSecret          string
	SuperadminEmail    string // bootstrap superadmin, created when none exists
	SuperadminPassword string
	Port               string
	AllowedOrigins     []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	Environment        string   // ENV: production, development, etc.
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		if u := strings.TrimSpace(getEnv("FRONTEND_URL", "")); u != "" {
			allowedOrigins = append(allowedOrigins, u)
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	return &Config{
		MongoURI:           getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/afetlink")),
		RedisURI:           getEnv("REDIS_URI", "redis://localhost:6379/0"),
		VaultAddr:          getEnv("VAULT_ADDR", "http://127.0.0.1:8200"),
		VaultToken:         getEnv("VAULT_TOKEN", ""),
		JWTSecret:          getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		SuperadminEmail:    getEnv("SUPERADMIN_EMAIL", "superadmin@example.com"),
		SuperadminPassword: getEnv("SUPERADMIN_PASSWORD", "superadmin123"),
		Port:               getEnv("PORT", "8080"),
		AllowedOrigins:     allowedOrigins,
		Environment:        env,
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
