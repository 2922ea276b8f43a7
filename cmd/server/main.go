package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/afetlink/afetlink-backend/internal/config"
	"github.com/afetlink/afetlink-backend/internal/database"
	"github.com/afetlink/afetlink-backend/internal/handlers"
	"github.com/afetlink/afetlink-backend/internal/middleware"
	"github.com/afetlink/afetlink-backend/internal/routes"
	"github.com/afetlink/afetlink-backend/internal/secrets"
	"github.com/afetlink/afetlink-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Secret provider: the AES master key lives in Vault, never in config.
	secretProvider, err := secrets.NewVaultProvider(cfg.VaultAddr, cfg.VaultToken)
	if err != nil {
		log.Fatal("Failed to create Vault client:", err)
	}

	// Probe the key once at startup so a misconfigured Vault is visible
	// immediately. Warn-only: requests still fetch (and fail) on their own.
	if _, err := secretProvider.MasterKey(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: could not fetch master key from Vault: %v", err)
		log.Println("   Encrypted endpoints will fail until Vault is reachable.")
		log.Println("   Store a key with: vault kv put secret/aes-key master_key=$(openssl rand -base64 32)")
	} else {
		log.Println("✅ Vault master key reachable")
	}

	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	if err := database.EnsureIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Bootstrap the superadmin account when none exists.
	if err := services.EnsureSuperadmin(context.Background(), cfg.SuperadminEmail, cfg.SuperadminPassword); err != nil {
		log.Fatal("Failed to ensure superadmin:", err)
	}

	handlers.Init(secretProvider, cfg.JWTSecret)

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.RateLimitMiddleware)
		r.Use(middleware.SignInRateLimit)
		log.Println("✅ Production security enabled (security headers, per-IP + sign-in rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r)

	log.Printf("🚀 AfetLink backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
