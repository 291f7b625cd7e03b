// Package cryptox implements the authenticated encryption applied to file
// contents before they are written to blob storage, and the matching
// verification/decryption on the way back out.
//
// The scheme is AES-256-GCM with a 16-byte random nonce and a 16-byte
// authentication tag. Ciphertext, nonce and tag are kept as separate fields
// so the nonce and tag can be persisted as text columns next to the file
// record while the ciphertext goes to object storage.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// MinSecretSize is the minimum length of the configured secret.
	// A shorter secret is a fatal configuration error.
	MinSecretSize = 32
	// NonceSize is the length of the per-seal random nonce.
	NonceSize = 16
	// TagSize is the length of the GCM authentication tag.
	TagSize = 16

	// keyInfo binds the derived key to this purpose so the same secret
	// reused elsewhere never yields the same AES key.
	keyInfo = "lockbox/file-content/v1"
)

var (
	// ErrKeyTooShort is returned by NewCodec when the secret is shorter
	// than MinSecretSize. Startup must abort on it.
	ErrKeyTooShort = errors.New("encryption secret must be at least 32 bytes")

	// ErrMalformedBlob is returned by Open when the nonce or tag is
	// missing or has the wrong length or encoding. Callers treat it the
	// same as ErrDecryptFailed.
	ErrMalformedBlob = errors.New("malformed encrypted blob")

	// ErrDecryptFailed is returned by Open when tag verification fails.
	// Retrying with the same inputs cannot succeed.
	ErrDecryptFailed = errors.New("failed to decrypt")
)

// SealedBlob is the result of one Seal call. The three fields form one
// atomic unit: a stored record carrying ciphertext without both nonce and
// tag is malformed and is rejected by Open.
type SealedBlob struct {
	Ciphertext []byte
	Nonce      []byte
	Tag        []byte
}

// Codec is a stateless seal/open transform over a process-wide key.
// It is safe for concurrent use; the key is fixed at construction and
// never re-read or rotated.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec derives the AES-256 key from secret via HKDF-SHA256 and builds
// the AEAD. Secrets shorter than MinSecretSize are rejected so a
// misconfigured service fails before it can serve a single request.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) < MinSecretSize {
		return nil, ErrKeyTooShort
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, secret, nil, []byte(keyInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, err
	}

	return &Codec{aead: aead}, nil
}

// Seal encrypts plaintext under a fresh random nonce. The ciphertext has
// the same length as the plaintext; integrity is carried by the separate
// 16-byte tag. Two calls with identical plaintext produce different nonces
// and different ciphertext.
func (c *Codec) Seal(plaintext []byte) (*SealedBlob, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	sealed := c.aead.Seal(nil, nonce, plaintext, nil)

	// GCM appends the tag to the ciphertext; split it back out.
	n := len(sealed) - TagSize
	return &SealedBlob{
		Ciphertext: sealed[:n:n],
		Nonce:      nonce,
		Tag:        sealed[n:],
	}, nil
}

// Open decrypts a SealedBlob and verifies its tag. Any alteration of
// ciphertext, nonce or tag, including tokens transposed from another blob,
// fails closed with ErrDecryptFailed; no partial or unverified plaintext
// is ever returned.
func (c *Codec) Open(sealed *SealedBlob) ([]byte, error) {
	if sealed == nil || len(sealed.Nonce) != NonceSize || len(sealed.Tag) != TagSize {
		return nil, ErrMalformedBlob
	}

	buf := make([]byte, 0, len(sealed.Ciphertext)+TagSize)
	buf = append(buf, sealed.Ciphertext...)
	buf = append(buf, sealed.Tag...)

	plaintext, err := c.aead.Open(nil, sealed.Nonce, buf, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

// EncodeToken renders a nonce or tag as stable reversible text for storage
// in a text-oriented metadata store.
func EncodeToken(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeToken parses a stored token and enforces its expected length.
// Anything that does not round-trip cleanly is a malformed blob.
func DecodeToken(s string, size int) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrMalformedBlob
	}
	if len(b) != size {
		return nil, ErrMalformedBlob
	}
	return b, nil
}
