package secrets

import (
	"context"
	"fmt"

	vault "github.com/hashicorp/vault/api"
)

// DefaultKeyPath is the KV v2 location of the AES master key.
const DefaultKeyPath = "secret/data/aes-key"

// VaultProvider fetches the master key from HashiCorp Vault's KV v2 secrets
// engine on every call. No caching: a key rotation in Vault takes effect on
// the next request, and a Vault outage fails the request rather than
// silently serving an old key.
type VaultProvider struct {
	client *vault.Client
	path   string
}

// NewVaultProvider builds a provider for the given Vault address and token.
func NewVaultProvider(addr, token string) (*VaultProvider, error) {
	cfg := vault.DefaultConfig()
	if addr != "" {
		cfg.Address = addr
	}

	client, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating vault client: %w", err)
	}
	client.SetToken(token)

	return &VaultProvider{client: client, path: DefaultKeyPath}, nil
}

// MasterKey reads the key at secret/data/aes-key. KV v2 nests the payload
// one level down: {data: {data: {master_key: <base64>}}}.
func (p *VaultProvider) MasterKey(ctx context.Context) ([]byte, error) {
	secret, err := p.client.Logical().ReadWithContext(ctx, p.path)
	if err != nil {
		return nil, fmt.Errorf("reading master key from vault: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return nil, ErrKeyNotFound
	}

	inner, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, ErrKeyNotFound
	}
	encoded, ok := inner["master_key"].(string)
	if !ok || encoded == "" {
		return nil, ErrKeyNotFound
	}

	return DecodeKey(encoded)
}
