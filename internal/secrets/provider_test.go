package secrets

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afetlink/afetlink-backend/pkg/envelope"
)

func TestDecodeKey(t *testing.T) {
	raw := make([]byte, envelope.KeySize)
	_, err := rand.Read(raw)
	require.NoError(t, err)

	key, err := DecodeKey(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, key)
}

func TestDecodeKeyNotBase64(t *testing.T) {
	_, err := DecodeKey("not-valid-base64!!!")
	assert.Error(t, err)
}

func TestDecodeKeyWrongLength(t *testing.T) {
	short := base64.StdEncoding.EncodeToString([]byte("short"))
	_, err := DecodeKey(short)
	assert.ErrorIs(t, err, envelope.ErrInvalidKeySize)
}

func TestStaticProvider(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	p := &StaticProvider{Key: key}

	got, err := p.MasterKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, key, got)
}

func TestStaticProviderError(t *testing.T) {
	wantErr := errors.New("vault sealed")
	p := &StaticProvider{Err: wantErr}

	_, err := p.MasterKey(context.Background())
	assert.ErrorIs(t, err, wantErr)
}
