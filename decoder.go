package id3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
)

// sizeReader turns the 4 size bytes of a frame header into a body
// length. v2.3 stores a plain big-endian 32-bit value, v2.4 a syncsafe
// one; the rest of the frame grammar is identical, so one decoder
// serves both versions.
type sizeReader func([4]byte) int

func v23Size(b [4]byte) int { return int(binary.BigEndian.Uint32(b[:])) }

func v24Size(b [4]byte) int { return decodeSyncsafe(b) }

type Decoder struct {
	r   io.Reader
	log *slog.Logger
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, log: discard}
}

func (d *Decoder) SetLogger(l *slog.Logger) { d.log = orDiscard(l) }

// ParseHeader parses only the 10-byte tag header. It returns
// NoTagError when the signature is missing; an unsupported version is
// not an error until frame decoding is attempted.
func (d *Decoder) ParseHeader() (TagHeader, error) {
	var raw struct {
		Magic    [3]byte
		Version  byte
		Revision byte
		Flags    byte
		Size     [4]byte
	}

	err := binary.Read(d.r, binary.BigEndian, &raw)
	if err != nil {
		return TagHeader{}, err
	}
	if !bytes.Equal(raw.Magic[:], id3byte) {
		return TagHeader{}, NoTagError{raw.Magic}
	}

	// The total size is always syncsafe, even in v2.3 tags whose
	// frame sizes are not.
	return TagHeader{
		Version:  raw.Version,
		Revision: raw.Revision,
		Flags:    HeaderFlags(raw.Flags),
		size:     decodeSyncsafe(raw.Size),
	}, nil
}

// Parse reads a complete tag: header, then the whole body into
// memory, then frames. The returned tag is empty but usable when an
// error is returned.
func (d *Decoder) Parse() (*Tag, error) {
	tag := NewTag()
	header, err := d.ParseHeader()
	if err != nil {
		return tag, err
	}
	tag.header = header

	if header.Version != 3 && header.Version != 4 {
		return tag, UnsupportedVersion{header.Version}
	}

	body := make([]byte, header.size)
	if _, err := io.ReadFull(d.r, body); err != nil {
		return tag, fmt.Errorf("reading tag body: %w", err)
	}

	frames, err := d.parseFrames(body, header.Version)
	tag.frames = frames
	return tag, err
}

func (d *Decoder) parseFrames(data []byte, version byte) ([]Frame, error) {
	size := v24Size
	if version == 3 {
		size = v23Size
	}
	popm := version == 4

	var frames []Frame
	cur := &cursor{data: data}
	for cur.remaining() > 0 {
		if allZero(cur.rest()) {
			d.log.Debug("padding", "bytes", cur.remaining())
			frames = append(frames, PaddingFrame{FrameHeader{size: cur.remaining()}})
			break
		}

		frame, err := d.parseFrame(cur, size, popm)
		if err != nil {
			return frames, err
		}
		frames = append(frames, frame)
	}

	return frames, nil
}

// parseFrame decodes the next frame at the cursor. Dispatch is by id,
// most specific first; text frames cover every remaining id starting
// with "T" or "G" (the grouping family), and anything else survives as
// a GenericFrame.
func (d *Decoder) parseFrame(cur *cursor, size sizeReader, popm bool) (Frame, error) {
	raw, err := cur.read(frameLength)
	if err != nil {
		return nil, fmt.Errorf("reading frame header: %w", err)
	}

	var sizeBytes [4]byte
	copy(sizeBytes[:], raw[4:8])
	header := FrameHeader{
		id:    FrameType(raw[0:4]),
		flags: FrameFlags(uint16(raw[8])<<8 | uint16(raw[9])),
		size:  size(sizeBytes),
	}
	if !validFrameID(header.id) {
		d.log.Debug("unreadable frame id", "bytes", []byte(header.id))
		header.id = invalidID
	}

	body, err := cur.read(header.size)
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	fc := &cursor{data: body}

	switch {
	case header.id == invalidID:
		return GenericFrame{header, body}, nil
	case header.id == "TXXX":
		return d.readExtendedText(header, fc)
	case header.id == "COMM":
		return d.readComment(header, fc)
	case header.id == "GEOB":
		return d.readObject(header, fc)
	case header.id == "APIC":
		return d.readPicture(header, fc)
	case header.id[0] == 'T' || header.id[0] == 'G':
		return d.readText(header, fc)
	case header.id == "POPM" && popm:
		return d.readPopularity(header, fc)
	default:
		d.log.Debug("opaque frame", "id", string(header.id), "size", header.size)
		return GenericFrame{header, body}, nil
	}
}

func (d *Decoder) readText(header FrameHeader, body *cursor) (Frame, error) {
	enc, err := body.readEncoding()
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	text, err := body.readString(enc)
	if err != nil {
		return nil, FrameError{header.id, err}
	}

	return TextFrame{header, text}, nil
}

func (d *Decoder) readExtendedText(header FrameHeader, body *cursor) (Frame, error) {
	enc, err := body.readEncoding()
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	description, err := body.readString(enc)
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	text, err := body.readString(enc)
	if err != nil {
		return nil, FrameError{header.id, err}
	}

	return ExtendedTextFrame{header, description, text}, nil
}

func (d *Decoder) readComment(header FrameHeader, body *cursor) (Frame, error) {
	enc, err := body.readEncoding()
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	lang, err := body.read(3)
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	description, err := body.readString(enc)
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	text, err := body.readString(enc)
	if err != nil {
		return nil, FrameError{header.id, err}
	}

	return CommentFrame{header, string(lang), description, text}, nil
}

func (d *Decoder) readObject(header FrameHeader, body *cursor) (Frame, error) {
	enc, err := body.readEncoding()
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	mime, err := body.readString(latin1)
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	filename, err := body.readString(enc)
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	description, err := body.readString(enc)
	if err != nil {
		return nil, FrameError{header.id, err}
	}

	return ObjectFrame{header, mime, filename, description, body.rest()}, nil
}

func (d *Decoder) readPicture(header FrameHeader, body *cursor) (Frame, error) {
	enc, err := body.readEncoding()
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	mime, err := body.readString(latin1)
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	kind, err := body.readByte()
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	description, err := body.readString(enc)
	if err != nil {
		return nil, FrameError{header.id, err}
	}

	return PictureFrame{header, mime, PictureKind(kind), description, body.rest()}, nil
}

// readPopularity decodes a POPM body: Latin-1 email, one rating byte,
// and an optional play counter which is discarded.
func (d *Decoder) readPopularity(header FrameHeader, body *cursor) (Frame, error) {
	email, err := body.readString(latin1)
	if err != nil {
		return nil, FrameError{header.id, err}
	}
	rating, err := body.readByte()
	if err != nil {
		return nil, FrameError{header.id, err}
	}

	return PopularityFrame{header, email, rating}, nil
}

// cursor walks an in-memory tag body. Frame grammars slice their
// declared extent off the tag cursor and consume fields from the
// slice, so a malformed frame cannot read past its own bounds.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) remaining() int { return len(c.data) - c.off }

func (c *cursor) rest() []byte { return c.data[c.off:] }

func (c *cursor) readByte() (byte, error) {
	if c.remaining() < 1 {
		return 0, io.ErrUnexpectedEOF
	}
	b := c.data[c.off]
	c.off++
	return b, nil
}

func (c *cursor) readEncoding() (Encoding, error) {
	b, err := c.readByte()
	return Encoding(b), err
}

func (c *cursor) read(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, io.ErrUnexpectedEOF
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

// readString consumes bytes up to and including the terminator for
// enc, or all remaining bytes when no terminator follows, and decodes
// them to UTF-8.
func (c *cursor) readString(enc Encoding) (string, error) {
	raw := c.rest()
	var field []byte
	if len(enc.terminator()) == 2 {
		end := -1
		for i := 0; i+1 < len(raw); i += 2 {
			if raw[i] == 0 && raw[i+1] == 0 {
				end = i
				break
			}
		}
		if end < 0 {
			field = raw
			c.off = len(c.data)
		} else {
			field = raw[:end]
			c.off += end + 2
		}
	} else {
		end := bytes.IndexByte(raw, 0)
		if end < 0 {
			field = raw
			c.off = len(c.data)
		} else {
			field = raw[:end]
			c.off += end + 1
		}
	}

	return enc.toUTF8(field)
}

func validFrameID(id FrameType) bool {
	for i := 0; i < len(id); i++ {
		b := id[i]
		if b >= '0' && b <= '9' {
			continue
		}
		if b >= 'A' && b <= 'Z' {
			continue
		}
		return false
	}
	return true
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
