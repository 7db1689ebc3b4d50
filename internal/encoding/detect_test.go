package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, string) {
	t.Helper()

	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Date;Category;Amount\n2024-01-10;อาหาร;200\n2024-01-11;Café;12,50\n"

	got, charset := readAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.CharsetUTF8, charset)
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date;Amount\n")...)

	got, charset := readAll(t, input)
	assert.Equal(t, "Date;Amount\n", got)
	assert.Equal(t, encoding.CharsetUTF8, charset)
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "Hi\n" as UTF-16LE with BOM.
	input := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00, '\n', 0x00}

	got, charset := readAll(t, input)
	assert.Equal(t, "Hi\n", got)
	assert.Equal(t, encoding.CharsetUTF16LE, charset)
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Descrição;Montante\n" with ç = 0xE7 and ã = 0xE3.
	input := []byte{
		'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
		'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
	}

	got, _ := readAll(t, input)
	assert.Equal(t, "Descrição;Montante\n", got)
}

func TestNewUTF8Reader_RuneSplitBySniffWindow(t *testing.T) {
	// Place a 3-byte rune across the 4096 byte sniff boundary.
	input := strings.Repeat("a", 4095) + "€ tail\n"

	got, charset := readAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.CharsetUTF8, charset)
}
