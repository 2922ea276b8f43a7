// Package handlers implements the HTTP surface. Handlers decode, validate,
// fetch the master key, call the encryption policy in services, touch the
// database and write JSON.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/afetlink/afetlink-backend/internal/secrets"
)

var (
	secretProvider secrets.Provider
	jwtSecret      []byte
)

// Init wires the dependencies handlers need. Call once at startup, before
// the router starts serving.
func Init(provider secrets.Provider, jwtSigningSecret string) {
	secretProvider = provider
	jwtSecret = []byte(jwtSigningSecret)
}

// JWTSecret exposes the signing secret for the auth middleware.
func JWTSecret() []byte {
	return jwtSecret
}

// masterKey fetches the encryption key for this request. Secret store
// unavailability is fatal to the request; there is no cached or stale-key
// fallback, and never a silent unencrypted path.
func masterKey(ctx context.Context) ([]byte, error) {
	return secretProvider.MasterKey(ctx)
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes the {"message": ...} error body used by every endpoint.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
