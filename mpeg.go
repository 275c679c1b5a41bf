package id3

import (
	"errors"
	"fmt"
)

// MPEGVersion is the 2-bit version field of an MPEG audio frame
// header.
type MPEGVersion byte

const (
	MPEG25 MPEGVersion = iota
	MPEGReserved
	MPEG2
	MPEG1
)

func (v MPEGVersion) String() string {
	switch v {
	case MPEG25:
		return "MPEG-2.5"
	case MPEG2:
		return "MPEG-2"
	case MPEG1:
		return "MPEG-1"
	default:
		return "reserved"
	}
}

// MPEGLayer is the 2-bit layer field of an MPEG audio frame header.
type MPEGLayer byte

const (
	LayerReserved MPEGLayer = iota
	Layer3
	Layer2
	Layer1
)

func (l MPEGLayer) String() string {
	switch l {
	case Layer1:
		return "Layer 1"
	case Layer2:
		return "Layer 2"
	case Layer3:
		return "Layer 3"
	default:
		return "reserved"
	}
}

// bitrates maps (version, layer, 4-bit code) to kbps. Only the
// MPEG-1 Layer 3 row is populated; a header whose lookup yields 0 is
// rejected as a false sync during scanning.
var bitrates = map[MPEGVersion]map[MPEGLayer][16]int{
	MPEG1: {
		Layer3: {0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
	},
}

// frequencies maps (version, 2-bit code) to Hz. Code 3 is reserved.
var frequencies = map[MPEGVersion][4]int{
	MPEG1: {44100, 48000, 32000, 0},
}

// MPEGHeader is one decoded MPEG audio frame header. Headers are
// produced by the FrameScanner; the frame payload itself is never
// interpreted.
type MPEGHeader struct {
	Version   MPEGVersion
	Layer     MPEGLayer
	Protected bool // a CRC-16 follows the header when set
	Bitrate   int  // kbps
	Frequency int  // Hz
	Padded    bool
}

// FrameSize returns the total frame length in bytes, header included.
func (h MPEGHeader) FrameSize() int {
	if h.Layer == Layer1 {
		return 12 * h.Bitrate * 1000 / h.Frequency * 4
	}
	pad := 0
	if h.Padded {
		pad = 1
	}
	return 144*h.Bitrate*1000/h.Frequency + pad
}

func (h MPEGHeader) String() string {
	return fmt.Sprintf("%s %s %d kbps %d Hz", h.Version, h.Layer, h.Bitrate, h.Frequency)
}

var (
	errShortHeader   = errors.New("incomplete frame header")
	errNoSync        = errors.New("no frame sync")
	errReservedLayer = errors.New("reserved MPEG layer")
)

// isSync reports the 2-byte frame sync pattern: a 0xFF byte followed
// by a byte whose top 4 bits are set.
func isSync(a, b byte) bool {
	return a == 0xff && b&0xf0 == 0xf0
}

// parseMPEGHeader decodes the 4-byte frame header at the start of b.
// errShortHeader means more bytes are needed before a verdict is
// possible. errNoSync means the bytes cannot be a frame header and
// scanning should resume one byte further on; sync patterns occur in
// ordinary audio data, so this is routine. errReservedLayer is the
// one unrecoverable header.
func parseMPEGHeader(b []byte) (MPEGHeader, error) {
	if len(b) < 4 {
		return MPEGHeader{}, errShortHeader
	}
	if !isSync(b[0], b[1]) {
		return MPEGHeader{}, errNoSync
	}

	h := MPEGHeader{
		Version:   MPEGVersion(b[1] >> 3 & 3),
		Layer:     MPEGLayer(b[1] >> 1 & 3),
		Protected: b[1]&1 == 0,
		Padded:    b[2]>>1&1 == 1,
	}
	if h.Layer == LayerReserved {
		return MPEGHeader{}, errReservedLayer
	}

	h.Bitrate = bitrates[h.Version][h.Layer][b[2]>>4]
	h.Frequency = frequencies[h.Version][b[2]>>2&3]
	if h.Bitrate == 0 || h.Frequency == 0 {
		return MPEGHeader{}, errNoSync
	}
	return h, nil
}
