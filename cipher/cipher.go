// Package cipher provides the encryption stage of the file pipeline.
//
// Two ciphers are available: the additive byte cipher the tool has always
// used ("vigenere"), which only obscures data, and XChaCha20-Poly1305
// ("xchacha20poly1305"), which encrypts and authenticates it.
package cipher

import (
	"fmt"
	"sort"
	"strings"
)

// A Cipher encrypts and decrypts whole buffers. It never modifies its
// input.
type Cipher interface {
	Encrypt(src []byte) ([]byte, error)
	Decrypt(src []byte) ([]byte, error)
}

// Algorithm names.
const (
	VigenereName = "vigenere"
	XChaChaName  = "xchacha20poly1305"
)

// Default is the cipher used when none is configured.
const Default = VigenereName

var constructors = map[string]func(key []byte) Cipher{
	VigenereName: func(key []byte) Cipher { return Vigenere{Key: key} },
	XChaChaName:  func(key []byte) Cipher { return XChaCha{Passphrase: key} },
}

// New returns the cipher called name, keyed with key. Names are not case
// sensitive.
func New(name string, key []byte) (Cipher, error) {
	newCipher, ok := constructors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown encryption algorithm %q (available: %s)",
			name, strings.Join(Names(), ", "))
	}
	return newCipher(key), nil
}

// Names returns the available cipher names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
