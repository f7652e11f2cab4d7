package cipher

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// BlobVersion is the first byte of every XChaCha blob. It is also the
// additional authenticated data, so tampering with it fails decryption.
const BlobVersion byte = 0x01

const saltSize = 16

// BlobOverhead is the number of bytes an encrypted blob adds to its
// plaintext: version, salt, nonce and Poly1305 tag.
const BlobOverhead = 1 + saltSize + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

var hkdfInfo = []byte("gsea.file.v1")

// ErrAuthentication is returned when a blob does not decrypt under the
// given passphrase, either because the passphrase is wrong or because
// the data was modified.
var ErrAuthentication = errors.New("decryption failed (wrong key or tampered data)")

// XChaCha encrypts with XChaCha20-Poly1305. The key is derived from the
// passphrase with HKDF-SHA256 and a random salt, so encrypting the same
// file twice gives different output.
//
// Blob layout:
//
//	[version: 1] [salt: 16] [nonce: 24] [ciphertext + tag: N+16]
type XChaCha struct {
	Passphrase []byte
}

func (x XChaCha) deriveKey(salt []byte) ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, x.Passphrase, salt, hkdfInfo), key); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	return key, nil
}

func (x XChaCha) Encrypt(src []byte) ([]byte, error) {
	if len(x.Passphrase) == 0 {
		return nil, errors.New("xchacha20poly1305: empty passphrase")
	}

	out := make([]byte, 1+saltSize+chacha20poly1305.NonceSizeX, len(src)+BlobOverhead)
	out[0] = BlobVersion
	salt := out[1 : 1+saltSize]
	nonce := out[1+saltSize:]
	if _, err := io.ReadFull(rand.Reader, out[1:]); err != nil {
		return nil, fmt.Errorf("generating salt and nonce: %w", err)
	}

	key, err := x.deriveKey(salt)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}
	return aead.Seal(out, nonce, src, out[:1]), nil
}

func (x XChaCha) Decrypt(src []byte) ([]byte, error) {
	if len(src) < BlobOverhead {
		return nil, fmt.Errorf("encrypted blob is %d bytes, minimum is %d", len(src), BlobOverhead)
	}
	if src[0] != BlobVersion {
		return nil, fmt.Errorf("encrypted blob version %d is not supported (expected %d)", src[0], BlobVersion)
	}

	salt := src[1 : 1+saltSize]
	nonce := src[1+saltSize : 1+saltSize+chacha20poly1305.NonceSizeX]
	ciphertext := src[1+saltSize+chacha20poly1305.NonceSizeX:]

	key, err := x.deriveKey(salt)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, src[:1])
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}
