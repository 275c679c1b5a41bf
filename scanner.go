package id3

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
)

// scanChunk is how much FrameScanner reads from the stream at a time.
const scanChunk = 1024

// FrameScanner finds the MPEG audio frame headers in a stream. It
// follows the bufio.Scanner idiom:
//
//	sc := id3.NewFrameScanner(r)
//	for sc.Next() {
//		fmt.Println(sc.Header())
//	}
//	if err := sc.Err(); err != nil {
//		...
//	}
//
// Scanning starts at the reader's current position, so callers that
// want to skip a leading tag seek past it first. Only headers are
// decoded; the scanner does not skip frame payloads, it rescans
// through them for the next sync pattern.
type FrameScanner struct {
	r      io.ReadSeeker
	closer io.Closer
	log    *slog.Logger

	buf    []byte
	offset int64 // stream position just past the last read
	eof    bool  // the last read ended at the end of the stream
	hdr    MPEGHeader
	err    error
	done   bool
}

func NewFrameScanner(r io.ReadSeeker) *FrameScanner {
	return &FrameScanner{r: r, log: discard}
}

// OpenFrameScanner opens path and scans it from the first byte.
// Close releases the file.
func OpenFrameScanner(path string) (*FrameScanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := NewFrameScanner(f)
	s.closer = f
	return s, nil
}

func (s *FrameScanner) SetLogger(l *slog.Logger) { s.log = orDiscard(l) }

// Close releases the file opened by OpenFrameScanner. It is a no-op
// for scanners over caller-owned readers.
func (s *FrameScanner) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Header returns the frame header found by the last successful Next.
func (s *FrameScanner) Header() MPEGHeader { return s.hdr }

// Err returns the error that stopped the scan, if any. Reaching the
// end of the stream is not an error.
func (s *FrameScanner) Err() error { return s.err }

// Next advances to the next frame header and reports whether one was
// found. Audio data matches the 2-byte sync pattern by coincidence
// all the time, so a sync whose header fails validation resumes the
// scan one byte further on, and a header split across a read
// boundary is completed by seeking back and refilling. A buffer with
// no sync at all is discarded wholesale.
func (s *FrameScanner) Next() bool {
	if s.done {
		return false
	}

	for {
		i := syncIndex(s.buf)
		if i < 0 {
			if !s.fill() {
				return false
			}
			continue
		}
		s.buf = s.buf[i:]

		hdr, err := parseMPEGHeader(s.buf)
		switch {
		case err == nil:
			s.hdr = hdr
			s.buf = s.buf[4:]
			return true
		case errors.Is(err, errShortHeader):
			if s.eof {
				s.done = true
				return false
			}
			if !s.rewind() || !s.fill() {
				return false
			}
		case errors.Is(err, errNoSync):
			s.log.Debug("false sync", "offset", s.offset-int64(len(s.buf)))
			s.buf = s.buf[1:]
		default:
			s.err = err
			s.done = true
			return false
		}
	}
}

// fill replaces the buffer with the next chunk of the stream. It
// returns false at the end of the stream or on a read error.
func (s *FrameScanner) fill() bool {
	chunk := make([]byte, scanChunk)
	n, err := io.ReadFull(s.r, chunk)
	s.offset += int64(n)
	switch {
	case err == nil:
	case errors.Is(err, io.ErrUnexpectedEOF):
		s.eof = true
	case errors.Is(err, io.EOF):
		s.done = true
		return false
	default:
		s.err = err
		s.done = true
		return false
	}
	s.buf = chunk[:n]
	return true
}

// rewind seeks the stream back by the unconsumed buffer length, so
// that the next fill re-reads those bytes in full.
func (s *FrameScanner) rewind() bool {
	delta := int64(len(s.buf))
	if _, err := s.r.Seek(-delta, io.SeekCurrent); err != nil {
		s.err = err
		s.done = true
		return false
	}
	s.offset -= delta
	s.buf = nil
	return true
}

// syncIndex returns the offset of the first 2-byte sync pattern in b,
// or -1. A lone 0xFF as the final byte counts: it may be the first
// half of a sync split across a read boundary, and the incomplete
// header parse that follows makes the scanner refill from there.
func syncIndex(b []byte) int {
	off := 0
	for {
		i := bytes.IndexByte(b[off:], 0xff)
		if i < 0 {
			return -1
		}
		i += off
		if i+1 == len(b) {
			return i
		}
		if b[i+1]&0xf0 == 0xf0 {
			return i
		}
		off = i + 1
	}
}
