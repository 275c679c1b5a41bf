package id3

import (
	"fmt"
	"io"
	"log/slog"
)

const (
	frameLength   = 10
	tagHeaderSize = 10

	// Tags grow to the next multiple of this when the frames no
	// longer fit into the padding they were read with.
	paddingUnit = 1024
)

var (
	id3byte = []byte("ID3")
	nul     = []byte{0}
	nul2    = []byte{0, 0}
)

type HeaderFlags byte
type FrameFlags uint16
type FrameType string
type PictureKind byte

// Encoding is the text encoding selector that prefixes encoded string
// fields inside a frame body.
type Encoding byte

const (
	latin1   Encoding = 0
	utf16bom Encoding = 1
	utf16be  Encoding = 2
	utf8enc  Encoding = 3
)

func (e Encoding) String() string {
	switch e {
	case latin1:
		return "ISO-8859-1"
	case utf16bom:
		return "UTF-16"
	case utf16be:
		return "UTF-16BE"
	case utf8enc:
		return "UTF-8"
	default:
		return fmt.Sprintf("%d", byte(e))
	}
}

func (e Encoding) terminator() []byte {
	switch e {
	case utf16bom, utf16be:
		return nul2
	default:
		return nul
	}
}

// TagHeader is the fixed 10-byte header at the start of a tagged file.
type TagHeader struct {
	Version  byte // 3 or 4 for files this library can decode
	Revision byte
	Flags    HeaderFlags
	size     int // body length excluding the header itself
}

// Size returns the length of the tag body, excluding the 10 header
// bytes.
func (h TagHeader) Size() int { return h.size }

// NoTagError reports that a file does not begin with an ID3v2 header.
// Readers treat it as "no tag present" rather than a failure.
type NoTagError struct {
	Magic [3]byte
}

func (err NoTagError) Error() string {
	return fmt.Sprintf("not an ID3v2 header: %q", err.Magic)
}

// UnsupportedVersion reports a tag whose major version this library
// cannot decode.
type UnsupportedVersion struct {
	Version byte
}

func (err UnsupportedVersion) Error() string {
	return fmt.Sprintf("Invalid version: %d", err.Version)
}

// FrameError reports a frame body that does not match its grammar.
type FrameError struct {
	ID  FrameType
	Err error
}

func (err FrameError) Error() string {
	return fmt.Sprintf("decoding %s frame: %s", err.ID, err.Err)
}

func (err FrameError) Unwrap() error { return err.Err }

func (f HeaderFlags) Unsynchronisation() bool {
	return (f & 128) > 0
}

func (f HeaderFlags) ExtendedHeader() bool {
	return (f & 64) > 0
}

func (f HeaderFlags) Experimental() bool {
	return (f & 32) > 0
}

func (f FrameFlags) PreserveTagAlteration() bool {
	return (f & 0x4000) == 0
}

func (f FrameFlags) PreserveFileAlteration() bool {
	return (f & 0x2000) == 0
}

func (f FrameFlags) ReadOnly() bool {
	return (f & 0x1000) > 0
}

func (f FrameFlags) Compressed() bool {
	return (f & 128) > 0
}

func (f FrameFlags) Encrypted() bool {
	return (f & 64) > 0
}

func (f FrameFlags) Grouped() bool {
	return (f & 32) > 0
}

func (f FrameType) String() string {
	v, ok := FrameNames[f]
	if ok {
		return v
	}

	return string(f)
}

func (p PictureKind) String() string {
	if int(p) >= len(PictureKinds) {
		return ""
	}

	return PictureKinds[p]
}

// decodeSyncsafe folds the low 7 bits of each of the 4 bytes into a
// 28-bit value, MSB first.
func decodeSyncsafe(b [4]byte) int {
	return int(b[0]&0x7f)<<21 | int(b[1]&0x7f)<<14 | int(b[2]&0x7f)<<7 | int(b[3]&0x7f)
}

// encodeSyncsafe is the inverse of decodeSyncsafe. It always produces
// exactly 4 bytes; bits above the 28th are lost, which no real tag size
// comes near.
func encodeSyncsafe(n int) [4]byte {
	return [4]byte{
		byte(n >> 21 & 0x7f),
		byte(n >> 14 & 0x7f),
		byte(n >> 7 & 0x7f),
		byte(n & 0x7f),
	}
}

func intToBytes(i int) []byte {
	return []byte{
		byte(i >> 24),
		byte(i >> 16),
		byte(i >> 8),
		byte(i),
	}
}

func concat(bs ...[]byte) []byte {
	n := 0
	for _, b := range bs {
		n += len(b)
	}
	out := make([]byte, 0, n)
	for _, b := range bs {
		out = append(out, b...)
	}
	return out
}

func writeMany(w io.Writer, data ...[]byte) error {
	for _, data := range data {
		_, err := w.Write(data)
		if err != nil {
			return err
		}
	}

	return nil
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return discard
	}
	return l
}
