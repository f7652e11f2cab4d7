package cipher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVigenere(t *testing.T) {
	v := Vigenere{Key: []byte{1, 2, 255}}
	src := []byte{0, 10, 20, 254, 255}

	enc, err := v.Encrypt(src)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 12, 19, 255, 1}, enc)
	require.Equal(t, []byte{0, 10, 20, 254, 255}, src, "input was modified")

	dec, err := v.Decrypt(enc)
	require.NoError(t, err)
	require.Equal(t, src, dec)
}

func TestVigenereEmptyKey(t *testing.T) {
	src := []byte("unchanged")
	enc, err := Vigenere{}.Encrypt(src)
	require.NoError(t, err)
	require.Equal(t, src, enc)
}

func TestXChaChaRoundTrip(t *testing.T) {
	x := XChaCha{Passphrase: []byte("correct horse")}
	src := []byte("attack at dawn")

	enc, err := x.Encrypt(src)
	require.NoError(t, err)
	require.Len(t, enc, len(src)+BlobOverhead)
	require.Equal(t, BlobVersion, enc[0])

	again, err := x.Encrypt(src)
	require.NoError(t, err)
	require.NotEqual(t, enc, again, "salt and nonce should be random")

	dec, err := x.Decrypt(enc)
	require.NoError(t, err)
	require.Equal(t, src, dec)
}

func TestXChaChaEmptyInput(t *testing.T) {
	x := XChaCha{Passphrase: []byte("k")}
	enc, err := x.Encrypt(nil)
	require.NoError(t, err)
	dec, err := x.Decrypt(enc)
	require.NoError(t, err)
	require.Empty(t, dec)
}

func TestXChaChaWrongKey(t *testing.T) {
	enc, err := XChaCha{Passphrase: []byte("right")}.Encrypt([]byte("secret"))
	require.NoError(t, err)

	_, err = XChaCha{Passphrase: []byte("wrong")}.Decrypt(enc)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestXChaChaTampered(t *testing.T) {
	x := XChaCha{Passphrase: []byte("k")}
	enc, err := x.Encrypt([]byte("secret"))
	require.NoError(t, err)

	enc[len(enc)-1] ^= 1
	_, err = x.Decrypt(enc)
	require.ErrorIs(t, err, ErrAuthentication)

	_, err = x.Decrypt(enc[:BlobOverhead-1])
	require.ErrorContains(t, err, "minimum is")
}

func TestXChaChaEmptyPassphrase(t *testing.T) {
	_, err := XChaCha{}.Encrypt([]byte("x"))
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	c, err := New("Vigenere", []byte("k"))
	require.NoError(t, err)
	require.IsType(t, Vigenere{}, c)

	c, err = New(XChaChaName, []byte("k"))
	require.NoError(t, err)
	require.IsType(t, XChaCha{}, c)

	_, err = New("rot13", nil)
	require.ErrorContains(t, err, `unknown encryption algorithm "rot13"`)

	require.Equal(t, []string{"vigenere", "xchacha20poly1305"}, Names())
}
