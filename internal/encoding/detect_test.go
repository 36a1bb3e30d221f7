package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvn/nhatro/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Vietnamese characters should pass through unchanged.
	input := "Phòng;Điện cũ;Điện mới\nA101;100;150\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1258(t *testing.T) {
	// Windows-1258 encoded "đơn;Ư\n".
	// In Windows-1258: đ = 0xF0, ơ = 0xF5, Ư = 0xDD. Under
	// Windows-1252 the same bytes read "ðõn;Ý", so this pins down
	// which codepage the fallback uses.
	input := []byte{
		0xF0, 0xF5, 'n', ';', 0xDD, '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "đơn;Ư\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Phòng;Điện\n")
	input := append(bom, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Phòng;Điện\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// UTF-16 LE with BOM, as Excel writes "Unicode Text" files.
	text := "Phòng\n"

	var input []byte
	input = append(input, 0xFF, 0xFE)

	for _, r := range text {
		input = append(input, byte(r), byte(r>>8))
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, text, string(got))
}
