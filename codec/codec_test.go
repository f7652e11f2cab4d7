package codec

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gsea/gsea/lz77"
)

func TestRoundTripAllAlgorithms(t *testing.T) {
	opticks, err := os.ReadFile("../testdata/opticks.txt")
	require.NoError(t, err)

	inputs := map[string][]byte{
		"opticks": opticks,
		"empty":   nil,
		"byte":    {0x7f},
		"zeros":   make([]byte, 70000),
	}

	for _, name := range Names() {
		alg, err := Lookup(name)
		require.NoError(t, err)
		for inputName, data := range inputs {
			t.Run(name+"/"+inputName, func(t *testing.T) {
				compressed, err := alg.Compress(data, 0)
				require.NoError(t, err)
				out, err := alg.Decompress(compressed)
				require.NoError(t, err)
				require.True(t, bytes.Equal(data, out), "decompressed output doesn't match")
			})
		}
	}
}

func TestLookup(t *testing.T) {
	alg, err := Lookup("LZ77")
	require.NoError(t, err)
	require.Equal(t, LZ77, alg.Name)
	require.Equal(t, ".lz77", alg.Suffix)

	_, err = Lookup("lzma")
	require.ErrorContains(t, err, `unknown compression algorithm "lzma"`)
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{"brotli", "gzip", "lz4", "lz77", "snappy", "zstd"}, Names())
}

func TestLZ77IsTheTokenFormat(t *testing.T) {
	alg, err := Lookup(LZ77)
	require.NoError(t, err)

	compressed, err := alg.Compress([]byte("aaaaaaaaaa"), 9)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x61, 0x01, 0x00, 0x01, 0x09}, compressed)

	_, err = alg.Decompress([]byte{0x02})
	require.ErrorIs(t, err, lz77.ErrUnknownTokenFlag)
}

func TestTrimSuffix(t *testing.T) {
	alg, err := Lookup(Zstd)
	require.NoError(t, err)
	require.Equal(t, "notes.txt", alg.TrimSuffix("notes.txt.zst"))
	require.Equal(t, "notes.txt", alg.TrimSuffix("notes.txt"))
}
