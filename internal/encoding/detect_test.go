package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/shiptrack/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, cs, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), cs
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Sevkiyat ID;Ad Soyad\nS1;Ayşe Yılmaz\n"

	got, cs := readAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.UTF8, cs)
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Ödeme Kaynağı\n")...)

	got, cs := readAll(t, input)
	assert.Equal(t, "Ödeme Kaynağı\n", got)
	assert.Equal(t, encoding.UTF8BOM, cs)
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	input, err := enc.Bytes([]byte("Nakliye Ücreti\n"))
	require.NoError(t, err)

	got, cs := readAll(t, input)
	assert.Equal(t, "Nakliye Ücreti\n", got)
	assert.Equal(t, encoding.UTF16LE, cs)
}

func TestNewUTF8Reader_Windows1254(t *testing.T) {
	// "Alıcı;Şehir\n" in Windows-1254: ı = 0xFD, Ş = 0xDE.
	input := []byte{'A', 'l', 0xFD, 'c', 0xFD, ';', 0xDE, 'e', 'h', 'i', 'r', '\n'}

	got, cs := readAll(t, input)
	assert.Equal(t, "Alıcı;Şehir\n", got)
	assert.Equal(t, encoding.Windows1254, cs)
}

func TestNewUTF8Reader_Latin1(t *testing.T) {
	// "Descrição;Montante\n" in Windows-1252: ç = 0xE7, ã = 0xE3.
	input := []byte{
		'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
		'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
	}

	got, _ := readAll(t, input)
	assert.Equal(t, "Descrição;Montante\n", got)
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	got, cs := readAll(t, nil)
	assert.Empty(t, got)
	assert.Equal(t, encoding.UTF8, cs)
}
