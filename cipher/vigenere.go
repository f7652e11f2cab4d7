package cipher

// Vigenere is an additive byte cipher: each byte has the matching key
// byte added to it, modulo 256, with the key repeated as needed.
// It offers no real secrecy.
type Vigenere struct {
	Key []byte
}

// Encrypt returns a copy of src with the key added. An empty key leaves
// the data unchanged.
func (v Vigenere) Encrypt(src []byte) ([]byte, error) {
	return v.apply(src, 1), nil
}

// Decrypt returns a copy of src with the key subtracted.
func (v Vigenere) Decrypt(src []byte) ([]byte, error) {
	return v.apply(src, -1), nil
}

func (v Vigenere) apply(src []byte, sign int) []byte {
	out := make([]byte, len(src))
	copy(out, src)
	if len(v.Key) == 0 {
		return out
	}
	for i, c := range src {
		k := v.Key[i%len(v.Key)]
		if sign > 0 {
			out[i] = c + k
		} else {
			out[i] = c - k
		}
	}
	return out
}
