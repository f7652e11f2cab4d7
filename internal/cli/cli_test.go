package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"

	"github.com/gsea/gsea/lz77"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())

	b := new(bytes.Buffer)
	root := NewRootCommand("test", "HEAD")
	root.SetArgs(args)
	root.SetOut(b)
	root.SetErr(b)
	root.SetIn(strings.NewReader(""))

	err := root.ExecuteContext(context.Background())
	return b.String(), err
}

func TestCompressEncryptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	packed := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.txt")
	data := bytes.Repeat([]byte("round and round the mulberry bush "), 40)
	require.NoError(t, os.WriteFile(in, data, 0o644))

	_, err := runCmd(t, "-ce", "-i", in, "-o", packed, "-k", "secret", "--comp-alg", "zstd", "--verify")
	require.NoError(t, err)

	_, err = runCmd(t, "-ud", "-i", packed, "-o", out, "-k", "secret", "--comp-alg", "zstd")
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"missing output", []string{"-c", "-i", "x"}, "paths are required"},
		{"compress and decompress", []string{"-cd", "-i", "x", "-o", "y"}, "at the same time"},
		{"missing key", []string{"-e", "-i", "x", "-o", "y"}, "key (-k) is required"},
		{"unknown algorithm", []string{"-c", "--comp-alg", "rar", "-i", "x", "-o", "y"}, `unknown compression algorithm "rar"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, tt.args...)
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out")
	cfgPath := filepath.Join(dir, "gsea.yaml")
	require.NoError(t, os.WriteFile(in, []byte("hello hello hello"), 0o644))
	require.NoError(t, os.WriteFile(cfgPath, []byte("comp_alg: snappy\nkey: fromfile\n"), 0o600))

	_, err := runCmd(t, "--config", cfgPath, "-ce", "-i", in, "-o", out)
	require.NoError(t, err)

	_, err = runCmd(t, "--config", cfgPath, "-ud", "-i", out, "-o", in+".back")
	require.NoError(t, err)
	got, err := os.ReadFile(in + ".back")
	require.NoError(t, err)
	require.Equal(t, "hello hello hello", string(got))

	// A flag overrides the file.
	_, err = runCmd(t, "--config", cfgPath, "-ud", "-i", out, "-o", in+".wrong", "--comp-alg", "lz4")
	require.ErrorContains(t, err, "1 of 1 files failed")
}

func TestFailedFileExitsNonZero(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.lz77"), []byte{0x01, 0x00}, 0o644))

	_, err := runCmd(t, "-d", "-i", in, "-o", t.TempDir())
	require.ErrorContains(t, err, "files failed")
}

func TestTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc.lz77")
	require.NoError(t, os.WriteFile(path, lz77.Encode([]byte("abcabcabc")), 0o644))

	out, err := runCmd(t, "tokens", path)
	require.NoError(t, err)
	require.Contains(t, out, "0: literal 0x61 'a'")
	require.Contains(t, out, "6: match offset=3 length=6")
	require.Contains(t, out, "3 literals, 1 matches, 9 bytes decoded")

	require.NoError(t, os.WriteFile(path, []byte{0x07}, 0o644))
	_, err = runCmd(t, "tokens", path)
	require.ErrorIs(t, err, lz77.ErrUnknownTokenFlag)
}

func TestExplain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("<aaaaaaaaaa"), 0o644))

	out, err := runCmd(t, "explain", path)
	require.NoError(t, err)
	require.Equal(t, "<<a<9,1>\n", out)

	out, err = runCmd(t, "explain", "--fast", path)
	require.NoError(t, err)
	require.Equal(t, "<<a<9,1>\n", out)
}

func TestAlgorithms(t *testing.T) {
	out, err := runCmd(t, "algorithms")
	require.NoError(t, err)
	require.Contains(t, out, "lz77     .lz77 (default)")
	require.Contains(t, out, "zstd     .zst")
	require.Contains(t, out, "vigenere (default)")
	require.Contains(t, out, "xchacha20poly1305")
}

func TestNoFlagsPrintsHelp(t *testing.T) {
	out, err := runCmd(t)
	require.NoError(t, err)
	require.Contains(t, out, "Usage:")
}
