package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encodings an uploaded file is recognised in.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF8BOM     Charset = "UTF-8 BOM"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1254 Charset = "windows-1254"
	Windows1252 Charset = "windows-1252"
)

const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect guesses the charset of a content prefix: BOM first, then UTF-8
// validity, then chardet. Turkish single-byte charsets are decoded as
// Windows-1254, which is a superset of ISO-8859-9. Anything unknown falls
// back to Windows-1252.
func Detect(prefix []byte) Charset {
	switch {
	case bytes.HasPrefix(prefix, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(prefix, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(prefix, bomUTF16BE):
		return UTF16BE
	case utf8.Valid(prefix):
		return UTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(prefix)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return UTF8
		case "ISO-8859-9", "windows-1254":
			return Windows1254
		}
	}

	if looksTurkish(prefix) {
		return Windows1254
	}

	return Windows1252
}

// Bytes encoding Ğ ğ İ ı Ş ş in Windows-1254. In Windows-1252 they are
// Icelandic letters that practically never occur in shipment data.
var turkishBytes = [256]bool{0xD0: true, 0xF0: true, 0xDD: true, 0xFD: true, 0xDE: true, 0xFE: true}

func looksTurkish(b []byte) bool {
	for _, c := range b {
		if turkishBytes[c] {
			return true
		}
	}

	return false
}

func (c Charset) decoder() encoding.Encoding {
	switch c {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case Windows1254:
		return charmap.Windows1254
	case Windows1252:
		return charmap.Windows1252
	}

	return nil
}

// NewUTF8Reader detects the encoding of r and returns a reader yielding UTF-8
// along with the detected charset. A UTF-8 BOM is stripped.
func NewUTF8Reader(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, peekSize)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	cs := Detect(buf)

	switch cs {
	case UTF8:
		return br, cs, nil
	case UTF8BOM:
		_, _ = br.Discard(len(bomUTF8))
		return br, cs, nil
	}

	return transform.NewReader(br, cs.decoder().NewDecoder()), cs, nil
}
