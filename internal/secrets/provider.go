// Package secrets supplies the master encryption key from an external secret
// store. The key is fetched on demand and never cached or embedded in
// configuration; if the store is unreachable the calling request fails.
package secrets

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/afetlink/afetlink-backend/pkg/envelope"
)

// ErrKeyNotFound is returned when the secret store responds but the master
// key is absent or not in the expected shape.
var ErrKeyNotFound = errors.New("master key not found in secret store")

// Provider returns the 256-bit master key protecting all sensitive fields.
// Implementations must not fall back to a stale or default key on failure.
type Provider interface {
	MasterKey(ctx context.Context) ([]byte, error)
}

// DecodeKey decodes a base64-encoded master key and validates its length.
func DecodeKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.New("master key must be base64-encoded")
	}
	if len(key) != envelope.KeySize {
		return nil, envelope.ErrInvalidKeySize
	}
	return key, nil
}
