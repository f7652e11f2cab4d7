package gsea

import (
	"bytes"
	"math/rand"
	"os"
	"reflect"
	"testing"
)

// expand rebuilds the input from src's matches, checking each match
// against the original data as it goes.
func expand(t *testing.T, src []byte, matches []Match, maxDistance, maxLength int) []byte {
	t.Helper()
	var out []byte
	pos := 0
	for _, m := range matches {
		out = append(out, src[pos:pos+m.Unmatched]...)
		pos += m.Unmatched
		if m.Length == 0 {
			continue
		}
		if m.Distance < 1 || m.Distance > maxDistance || m.Distance > len(out) {
			t.Fatalf("match at %d has distance %d", pos, m.Distance)
		}
		if m.Length > maxLength {
			t.Fatalf("match at %d has length %d", pos, m.Length)
		}
		start := len(out) - m.Distance
		for i := 0; i < m.Length; i++ {
			out = append(out, out[start+i])
		}
		pos += m.Length
	}
	return out
}

func testData(t *testing.T) [][]byte {
	opticks, err := os.ReadFile("testdata/opticks.txt")
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))
	small := make([]byte, 5000)
	for i := range small {
		small[i] = "abc"[rng.Intn(3)]
	}
	return [][]byte{
		opticks,
		small,
		bytes.Repeat([]byte("xyz"), 700),
		[]byte("a"),
		nil,
	}
}

func TestWindowSearch(t *testing.T) {
	for _, data := range testData(t) {
		mf := &WindowSearch{WindowSize: 1024, MaxLength: 255}
		matches := mf.FindMatches(nil, data)
		if got := expand(t, data, matches, 1024, 255); !bytes.Equal(got, data) {
			t.Fatal("expanded matches don't reproduce the input")
		}
	}
}

func TestHashChainSameAsWindowSearch(t *testing.T) {
	for _, size := range []int{16, 1024, 4096} {
		for _, data := range testData(t) {
			ws := &WindowSearch{WindowSize: size, MaxLength: 255}
			hc := &HashChain{WindowSize: size, MaxLength: 255}
			want := ws.FindMatches(nil, data)
			got := hc.FindMatches(nil, data)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("window %d: hash chain found different matches", size)
			}
		}
	}
}

func TestHashChainSearchLen(t *testing.T) {
	for _, data := range testData(t) {
		hc := &HashChain{SearchLen: 4, WindowSize: 65535, MaxLength: 1 << 16, MinLength: 4}
		matches := hc.FindMatches(nil, data)
		if got := expand(t, data, matches, 65535, 1<<16); !bytes.Equal(got, data) {
			t.Fatal("expanded matches don't reproduce the input")
		}
		for _, m := range matches {
			if m.Length > 0 && m.Length < 4 {
				t.Fatalf("match shorter than MinLength: %+v", m)
			}
		}
	}
}

func TestTextEncoder(t *testing.T) {
	var b bytes.Buffer
	w := &Writer{
		Dest:        &b,
		MatchFinder: &WindowSearch{},
		Encoder:     TextEncoder{},
	}
	w.Write([]byte("<aaaaaaaaaa"))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if got, want := b.String(), "<<a<9,1>"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

type blockRecorder struct {
	blocks []int
	last   []bool
}

func (r *blockRecorder) Reset() {}

func (r *blockRecorder) Encode(dst []byte, src []byte, matches []Match, lastBlock bool) []byte {
	r.blocks = append(r.blocks, len(src))
	r.last = append(r.last, lastBlock)
	return append(dst, src...)
}

func TestWriterBlocks(t *testing.T) {
	var b bytes.Buffer
	rec := &blockRecorder{}
	w := &Writer{
		Dest:        &b,
		MatchFinder: &WindowSearch{},
		Encoder:     rec,
		BlockSize:   10,
	}
	data := bytes.Repeat([]byte("0123456789"), 3)
	w.Write(data[:7])
	w.Write(data[7:])
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(rec.blocks, []int{10, 10, 10}) {
		t.Fatalf("block sizes %v", rec.blocks)
	}
	if !reflect.DeepEqual(rec.last, []bool{false, false, true}) {
		t.Fatalf("lastBlock flags %v", rec.last)
	}
	if !bytes.Equal(b.Bytes(), data) {
		t.Fatal("output doesn't match")
	}

	if _, err := w.Write([]byte("x")); err == nil {
		t.Fatal("Write after Close succeeded")
	}
	w.Reset(&b)
	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatalf("Write after Reset: %v", err)
	}
}

func BenchmarkWindowSearch(b *testing.B) {
	benchmarkMatchFinder(b, &WindowSearch{})
}

func BenchmarkHashChain(b *testing.B) {
	benchmarkMatchFinder(b, &HashChain{})
}

func benchmarkMatchFinder(b *testing.B, mf MatchFinder) {
	data, err := os.ReadFile("testdata/opticks.txt")
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	var matches []Match
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matches = mf.FindMatches(matches[:0], data)
	}
}
