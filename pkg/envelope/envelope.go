// Package envelope implements the authenticated encryption used for all
// sensitive fields at rest: AES-256-GCM with a fresh random nonce per value,
// the nonce, ciphertext and authentication tag stored as separate
// base64-encoded fields.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
)

const (
	// KeySize is the required master key length (AES-256).
	KeySize = 32
	// NonceSize is the GCM nonce length in bytes (96 bits).
	NonceSize = 12
	// TagSize is the GCM authentication tag length in bytes (128 bits).
	TagSize = 16
)

var (
	// ErrInvalidKeySize is returned when the key is not 32 bytes.
	ErrInvalidKeySize = errors.New("encryption key must be exactly 32 bytes (256 bits)")
	// ErrMalformedEnvelope is returned when an envelope field is missing or
	// not valid base64.
	ErrMalformedEnvelope = errors.New("malformed envelope")
	// ErrAuthenticationFailed is returned when the GCM tag does not verify:
	// tampered ciphertext, wrong key, or corrupted envelope.
	ErrAuthenticationFailed = errors.New("envelope authentication failed")
)

// Envelope is a self-contained encrypted value. It is opaque outside this
// package: callers store it, pass it back to Open, and never inspect it.
type Envelope struct {
	Nonce      string `bson:"nonce" json:"nonce"`
	Ciphertext string `bson:"ciphertext" json:"ciphertext"`
	AuthTag    string `bson:"auth_tag" json:"auth_tag"`
}

// Seal encrypts any JSON-serializable value under key and returns a new
// Envelope. Every call generates a fresh nonce; callers must Seal again on
// update rather than mutate an existing envelope in place.
func Seal(v any, key []byte) (*Envelope, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}

	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	// gcm.Seal appends the 16-byte tag to the ciphertext; the wire format
	// stores the tag in its own field.
	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	ciphertext, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	return &Envelope{
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		AuthTag:    base64.StdEncoding.EncodeToString(tag),
	}, nil
}

// Open authenticates and decrypts env under key, unmarshalling the plaintext
// into out. It fails with ErrAuthenticationFailed on any tag mismatch;
// callers must never use partial output from a failed Open.
func Open(env *Envelope, key []byte, out any) error {
	if len(key) != KeySize {
		return ErrInvalidKeySize
	}
	if env == nil || env.Nonce == "" || env.Ciphertext == "" || env.AuthTag == "" {
		return ErrMalformedEnvelope
	}

	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil || len(nonce) != NonceSize {
		return ErrMalformedEnvelope
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return ErrMalformedEnvelope
	}
	tag, err := base64.StdEncoding.DecodeString(env.AuthTag)
	if err != nil || len(tag) != TagSize {
		return ErrMalformedEnvelope
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return err
	}

	plaintext, err := gcm.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return ErrAuthenticationFailed
	}

	return json.Unmarshal(plaintext, out)
}
