package secrets

import "context"

// StaticProvider returns a fixed key. Test substitute for VaultProvider.
type StaticProvider struct {
	Key []byte
	Err error
}

func (p *StaticProvider) MasterKey(ctx context.Context) ([]byte, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Key, nil
}
