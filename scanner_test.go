package id3

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// mpegFrame builds one complete MPEG-1 Layer 3 frame: a header with
// the given bitrate and frequency codes and a zero payload filling
// the computed frame size.
func mpegFrame(t *testing.T, bitrateCode, freqCode byte) []byte {
	t.Helper()
	header := []byte{0xff, 0xfb, bitrateCode<<4 | freqCode<<2, 0}
	hdr, err := parseMPEGHeader(header)
	if err != nil {
		t.Fatal(err)
	}
	frame := make([]byte, hdr.FrameSize())
	copy(frame, header)
	return frame
}

func TestFrameSizes(t *testing.T) {
	tests := []struct {
		header MPEGHeader
		size   int
	}{
		{MPEGHeader{MPEG1, Layer3, false, 128, 44100, false}, 417},
		{MPEGHeader{MPEG1, Layer3, false, 128, 44100, true}, 418},
		{MPEGHeader{MPEG1, Layer3, false, 128, 48000, false}, 384},
		{MPEGHeader{MPEG1, Layer3, false, 320, 44100, false}, 1044},
		{MPEGHeader{MPEG1, Layer1, false, 128, 44100, false}, 136},
	}

	for _, test := range tests {
		if size := test.header.FrameSize(); size != test.size {
			t.Errorf("%s: Expected %d bytes, got %d", test.header, test.size, size)
		}
	}
}

func TestParseMPEGHeader(t *testing.T) {
	hdr, err := parseMPEGHeader([]byte{0xff, 0xfb, 0x94, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	want := MPEGHeader{MPEG1, Layer3, false, 128, 48000, false}
	if hdr != want {
		t.Errorf("Expected %+v - Got %+v", want, hdr)
	}

	hdr, err = parseMPEGHeader([]byte{0xff, 0xfa, 0x96, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if !hdr.Protected || !hdr.Padded || hdr.FrameSize() != 385 {
		t.Errorf("Unexpected header %+v", hdr)
	}
}

func TestParseMPEGHeaderErrors(t *testing.T) {
	tests := []struct {
		in  []byte
		err error
	}{
		{[]byte{0xff, 0xfb}, errShortHeader},
		{[]byte{0x00, 0xfb, 0x98, 0x00}, errNoSync},
		{[]byte{0xff, 0x0b, 0x98, 0x00}, errNoSync},
		{[]byte{0xff, 0xfb, 0x04, 0x00}, errNoSync}, // free bitrate
		{[]byte{0xff, 0xfb, 0xf4, 0x00}, errNoSync}, // bad bitrate code
		{[]byte{0xff, 0xfb, 0x9c, 0x00}, errNoSync}, // reserved frequency
		{[]byte{0xff, 0xf3, 0x98, 0x00}, errNoSync}, // MPEG-2, no table row
		{[]byte{0xff, 0xff, 0x98, 0x00}, errNoSync}, // Layer 1, no table row
		{[]byte{0xff, 0xf9, 0x98, 0x00}, errReservedLayer},
	}

	for _, test := range tests {
		_, err := parseMPEGHeader(test.in)
		if !errors.Is(err, test.err) {
			t.Errorf("parseMPEGHeader(% x): Expected %v - Got %v", test.in, test.err, err)
		}
	}
}

func TestScanConsecutiveFrames(t *testing.T) {
	frame := mpegFrame(t, 9, 1) // 128 kbps at 48000 Hz
	if len(frame) != 384 {
		t.Fatalf("Expected 384 byte frames, got %d", len(frame))
	}
	stream := bytes.Repeat(frame, 26)

	sc := NewFrameScanner(bytes.NewReader(stream))
	frames := 0
	for sc.Next() {
		if size := sc.Header().FrameSize(); size != 384 {
			t.Fatalf("Expected frame size 384, got %d", size)
		}
		frames++
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if frames != 26 {
		t.Fatalf("Expected 26 frames, got %d", frames)
	}
}

func TestScanHeaderAcrossReadBoundary(t *testing.T) {
	// The first header starts 2 bytes before the end of the first
	// 1024 byte chunk, so the scanner has to seek back and refill to
	// complete it.
	junk := bytes.Repeat([]byte{0xaa}, 1022)
	frame := mpegFrame(t, 9, 1)
	stream := concat(junk, frame, frame)

	sc := NewFrameScanner(bytes.NewReader(stream))
	frames := 0
	for sc.Next() {
		if sc.Header().Frequency != 48000 {
			t.Fatalf("Unexpected header %+v", sc.Header())
		}
		frames++
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if frames != 2 {
		t.Fatalf("Expected 2 frames, got %d", frames)
	}
}

func TestScanSkipsFalseSync(t *testing.T) {
	// 0xFF 0xFE matches the sync pattern but fails header
	// validation, so the scan resumes one byte further on.
	stream := concat([]byte{0x00, 0xff, 0xfe, 0x00, 0x12}, mpegFrame(t, 9, 1))

	sc := NewFrameScanner(bytes.NewReader(stream))
	frames := 0
	for sc.Next() {
		if sc.Header().Bitrate != 128 {
			t.Fatalf("Unexpected header %+v", sc.Header())
		}
		frames++
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if frames != 1 {
		t.Fatalf("Expected 1 frame, got %d", frames)
	}
}

func TestScanReservedLayer(t *testing.T) {
	stream := concat(mpegFrame(t, 9, 1), []byte{0xff, 0xf9, 0x98, 0x00})

	sc := NewFrameScanner(bytes.NewReader(stream))
	if !sc.Next() {
		t.Fatal("Expected the first frame to scan")
	}
	if sc.Next() {
		t.Fatal("Expected the reserved layer to stop the scan")
	}
	if !errors.Is(sc.Err(), errReservedLayer) {
		t.Errorf("Expected a reserved layer error, got %v", sc.Err())
	}
}

func TestScanTrailingTruncatedHeader(t *testing.T) {
	// A sync with too few bytes left at the end of the stream is not
	// an error; the stream is simply exhausted.
	stream := concat(mpegFrame(t, 9, 1), []byte{0xff, 0xfb})

	sc := NewFrameScanner(bytes.NewReader(stream))
	frames := 0
	for sc.Next() {
		frames++
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if frames != 1 {
		t.Fatalf("Expected 1 frame, got %d", frames)
	}
}

func TestScanGarbageOnly(t *testing.T) {
	stream := bytes.Repeat([]byte{0xaa, 0x55}, 1500)

	sc := NewFrameScanner(bytes.NewReader(stream))
	if sc.Next() {
		t.Fatal("Expected no frames")
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestScanEmpty(t *testing.T) {
	sc := NewFrameScanner(bytes.NewReader(nil))
	if sc.Next() {
		t.Fatal("Expected no frames")
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestScanPastTag(t *testing.T) {
	// Scanning a whole file from byte 0 wades through the tag, whose
	// UTF-16 BOMs are false syncs, before finding the audio.
	frame := mpegFrame(t, 9, 1)
	stream := concat(tagBytes(4, 831, rekordboxFrames()), frame, frame)

	sc := NewFrameScanner(bytes.NewReader(stream))
	frames := 0
	for sc.Next() {
		frames++
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if frames != 2 {
		t.Fatalf("Expected 2 frames, got %d", frames)
	}
}

func TestOpenFrameScanner(t *testing.T) {
	frame := mpegFrame(t, 9, 1)
	path := filepath.Join(t.TempDir(), "audio.mp3")
	if err := os.WriteFile(path, bytes.Repeat(frame, 3), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := OpenFrameScanner(path)
	if err != nil {
		t.Fatal(err)
	}

	frames := 0
	for sc.Next() {
		frames++
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if frames != 3 {
		t.Fatalf("Expected 3 frames, got %d", frames)
	}
	if err := sc.Close(); err != nil {
		t.Fatal(err)
	}
}
