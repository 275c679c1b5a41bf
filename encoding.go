package id3

import (
	"fmt"
	stdutf8 "unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// Write side. Every encoded string is emitted as UTF-16, little
	// endian, with a leading BOM.
	utf16Out = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

	// Read side. The BOM is mandatory and picks the byte order.
	utf16In = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)

	utf16BEIn = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
)

// toUTF8 converts raw field bytes, terminator already stripped, to a
// Go string.
func (e Encoding) toUTF8(b []byte) (string, error) {
	switch e {
	case latin1:
		out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case utf16bom:
		out, _, err := transform.Bytes(utf16In.NewDecoder(), b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case utf16be:
		out, _, err := transform.Bytes(utf16BEIn.NewDecoder(), b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case utf8enc:
		if !stdutf8.Valid(b) {
			return "", fmt.Errorf("invalid UTF-8 text")
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported text encoding %s", e)
	}
}

// utf16FromUTF8 produces the on-disk form of an encoded string value:
// a little-endian BOM followed by UTF-16 code units, no terminator.
func utf16FromUTF8(s string) []byte {
	out, _, _ := transform.Bytes(utf16Out.NewEncoder(), []byte(s))
	return out
}

// latin1FromUTF8 converts a string to ISO-8859-1 bytes. MIME types and
// Popularimeter emails stay Latin-1 regardless of the frame encoding;
// runes outside the repertoire become substitutes rather than errors.
func latin1FromUTF8(s string) []byte {
	enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	out, _, _ := transform.Bytes(enc, []byte(s))
	return out
}
