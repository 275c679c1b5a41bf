package id3

import "io"

// Encoder writes frames in the v2.4 on-disk form. Sizes are always
// measured from the re-encoded body, never taken from a decoded
// frame's header.
type Encoder struct {
	w io.Writer
	n int
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteFrame writes one frame. Padding runs and frames with an
// unreadable id are dropped; the tag writer appends fresh padding
// after the last frame instead.
func (e *Encoder) WriteFrame(f Frame) error {
	if f.ID() == "" || f.ID() == invalidID {
		return nil
	}

	body := f.Encode()
	err := writeMany(e.w, f.Header().serialize(len(body)), body)
	if err != nil {
		return err
	}
	e.n += frameLength + len(body)
	return nil
}

// Written returns the number of body bytes produced so far.
func (e *Encoder) Written() int { return e.n }

// writeTagHeader emits a 10-byte tag header: always version 4,
// revision 0, no flags.
func writeTagHeader(w io.Writer, size int) error {
	sizeBytes := encodeSyncsafe(size)
	return writeMany(w, id3byte, []byte{4, 0, 0}, sizeBytes[:])
}
