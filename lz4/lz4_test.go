package lz4

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/pierrec/lz4/v4"
)

func opticks(t testing.TB) []byte {
	data, err := os.ReadFile("../testdata/opticks.txt")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestBlockEncode(t *testing.T) {
	data := opticks(t)
	compressed := CompressBlock(data)

	decompressed := make([]byte, len(data))
	n, err := lz4.UncompressBlock(compressed, decompressed)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("Got %d bytes, wanted %d", n, len(data))
	}

	if !bytes.Equal(decompressed, data) {
		t.Fatal("Decompressed output does not match")
	}
}

func TestBlockShortInputs(t *testing.T) {
	for _, s := range []string{"a", "aaaaaaaa", "abcdabcdabcd", "abcdabcdabcdabcdabcd"} {
		data := []byte(s)
		out, err := DecompressBlock(CompressBlock(data), len(data))
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("%q: got %q", s, out)
		}
	}
}

func TestFrameEncode(t *testing.T) {
	data := bytes.Repeat(opticks(t), 30)
	compressed := Compress(data)

	decompressed, err := io.ReadAll(lz4.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(decompressed, data) {
		t.Fatal("Decompressed output does not match")
	}
}

func TestFrameEmpty(t *testing.T) {
	out, err := Decompress(Compress(nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d bytes from an empty frame", len(out))
	}
}

func TestFrameChecksum(t *testing.T) {
	compressed := Compress(opticks(t))
	compressed[len(compressed)-1] ^= 0xff
	if _, err := Decompress(compressed); err == nil {
		t.Fatal("bad content checksum was not detected")
	}
}
