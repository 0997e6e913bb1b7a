package fingerprint

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes_Deterministic(t *testing.T) {
	data := []byte("hello world")

	first := Bytes(data)
	second := Bytes(data)

	assert.Equal(t, first, second)
	assert.Len(t, first, Size)
	assert.Equal(t, strings.ToLower(first), first, "fingerprint must be lowercase hex")
}

func TestBytes_DistinctInputs(t *testing.T) {
	fixtures := [][]byte{
		[]byte("hello world"),
		[]byte("hello world "),
		[]byte(""),
		{0x00},
		{0x00, 0x00},
		bytes.Repeat([]byte{0xFF}, 10000),
	}

	seen := make(map[string]int)
	for i, f := range fixtures {
		fp := Bytes(f)
		if prev, ok := seen[fp]; ok {
			t.Fatalf("fixtures %d and %d collided on %s", prev, i, fp)
		}
		seen[fp] = i
	}
}

func TestReader_MatchesBytes(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 50000) // spans multiple copy buffers

	streamed, err := Reader(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, Bytes(data), streamed)
}

func TestText_EncodesUTF8(t *testing.T) {
	s := "conteúdo autêntico"
	assert.Equal(t, Bytes([]byte(s)), Text(s))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestReader_PropagatesReadError(t *testing.T) {
	_, err := Reader(failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read content")
}

func TestDecode_RoundTrip(t *testing.T) {
	data := []byte("round trip")

	raw := Sum(data)
	decoded, err := Decode(Bytes(data))
	require.NoError(t, err)

	assert.Equal(t, raw, decoded)
}

func TestDecode_RejectsBadInput(t *testing.T) {
	_, err := Decode("abc")
	assert.Error(t, err)

	_, err = Decode(strings.Repeat("zz", 32))
	assert.Error(t, err)
}
