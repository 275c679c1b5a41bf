package id3

import "strconv"

var FrameNames = map[FrameType]string{
	"AENC": "Audio encryption",
	"APIC": "Attached picture",
	"ASPI": "Audio seek point index",
	"COMM": "Comments",
	"COMR": "Commercial frame",

	"ENCR": "Encryption method registration",
	"EQU2": "Equalisation (2)",
	"ETCO": "Event timing codes",

	"GEOB": "General encapsulated object",
	"GRID": "Group identification registration",
	"GRP1": "Grouping",

	"LINK": "Linked information",

	"MCDI": "Music CD identifier",
	"MLLT": "MPEG location lookup table",

	"OWNE": "Ownership frame",

	"PRIV": "Private frame",
	"PCNT": "Play counter",
	"POPM": "Popularimeter",
	"POSS": "Position synchronisation frame",

	"RBUF": "Recommended buffer size",
	"RVA2": "Relative volume adjustment (2)",
	"RVRB": "Reverb",

	"SEEK": "Seek frame",
	"SIGN": "Signature frame",
	"SYLT": "Synchronised lyric/text",
	"SYTC": "Synchronised tempo codes",

	"TALB": "Album/Movie/Show title",
	"TBPM": "BPM (beats per minute)",
	"TCOM": "Composer",
	"TCON": "Content type",
	"TCOP": "Copyright message",
	"TDEN": "Encoding time",
	"TDLY": "Playlist delay",
	"TDOR": "Original release time",
	"TDRC": "Recording time",
	"TDRL": "Release time",
	"TDTG": "Tagging time",
	"TENC": "Encoded by",
	"TEXT": "Lyricist/Text writer",
	"TFLT": "File type",
	"TIPL": "Involved people list",
	"TIT1": "Content group description",
	"TIT2": "Title/songname/content description",
	"TIT3": "Subtitle/Description refinement",
	"TKEY": "Initial key",
	"TLAN": "Language(s)",
	"TLEN": "Length",
	"TMCL": "Musician credits list",
	"TMED": "Media type",
	"TMOO": "Mood",
	"TOAL": "Original album/movie/show title",
	"TOFN": "Original filename",
	"TOLY": "Original lyricist(s)/text writer(s)",
	"TOPE": "Original artist(s)/performer(s)",
	"TOWN": "File owner/licensee",
	"TPE1": "Lead performer(s)/Soloist(s)",
	"TPE2": "Band/orchestra/accompaniment",
	"TPE3": "Conductor/performer refinement",
	"TPE4": "Interpreted, remixed, or otherwise modified by",
	"TPOS": "Part of a set",
	"TPRO": "Produced notice",
	"TPUB": "Publisher",
	"TRCK": "Track number/Position in set",
	"TRSN": "Internet radio station name",
	"TRSO": "Internet radio station owner",
	"TSOA": "Album sort order",
	"TSOP": "Performer sort order",
	"TSOT": "Title sort order",
	"TSO2": "Album Artist sort order", // iTunes extension
	"TSOC": "Composer sort oder",      // iTunes extension
	"TSRC": "ISRC (international standard recording code)",
	"TSSE": "Software/Hardware and settings used for encoding",
	"TSST": "Set subtitle",
	"TXXX": "User defined text information frame",

	"UFID": "Unique file identifier",
	"USER": "Terms of use",
	"USLT": "Unsynchronised lyric/text transcription",

	"WCOM": "Commercial information",
	"WCOP": "Copyright/Legal information",
	"WOAF": "Official audio file webpage",
	"WOAR": "Official artist/performer webpage",
	"WOAS": "Official audio source webpage",
	"WORS": "Official Internet radio station homepage",
	"WPAY": "Payment",
	"WPUB": "Publishers official webpage",
	"WXXX": "User defined URL link frame",
}

var PictureKinds = []string{
	"Other",
	"32x32 pixels 'file icon' (PNG only)",
	"Other file icon",
	"Cover (front)",
	"Cover (back)",
	"Leaflet page",
	"Media (e.g. label side of CD)",
	"Lead artist/lead performer/soloist",
	"Artist/performer",
	"Conductor",
	"Band/Orchestra",
	"Composer",
	"Lyricist/text writer",
	"Recording Location",
	"During recording",
	"During performance",
	"Movie/video screen capture",
	"A bright coloured fish",
	"Illustration",
	"Band/artist logotype",
	"Publisher/Studio logotype",
}

// PictureFront is the attached-picture kind for front cover art.
const PictureFront PictureKind = 3

// invalidID marks a frame whose on-disk id was not valid frame-id
// text. Such frames survive decoding as opaque blobs but are dropped
// again on write.
const invalidID FrameType = "XXXX"

type FrameHeader struct {
	id    FrameType
	flags FrameFlags
	size  int
}

func (h FrameHeader) ID() FrameType { return h.id }

func (h FrameHeader) Flags() FrameFlags { return h.flags }

// Size returns the frame body length as declared when the frame was
// decoded. It is zero for frames built in memory and is never reused
// on write; the encoder always measures the re-encoded body.
func (h FrameHeader) Size() int { return h.size }

func (h FrameHeader) Header() FrameHeader { return h }

// serialize produces the 10 header bytes in the v2.4 on-disk form:
// id, syncsafe body size, flags.
func (h FrameHeader) serialize(size int) []byte {
	out := make([]byte, frameLength)
	copy(out, h.id)
	sizeBytes := encodeSyncsafe(size)
	copy(out[4:8], sizeBytes[:])
	flagBytes := intToBytes(int(h.flags))
	copy(out[8:10], flagBytes[2:4])
	return out
}

// Frame is one typed record inside a tag body. Encode returns the
// frame body re-derived from the current field values, in the form the
// writer emits; it is nil for frames that are never written back.
type Frame interface {
	ID() FrameType
	Header() FrameHeader
	Value() string
	Encode() []byte
}

// TextFrame is any text information frame: ids starting with "T", plus
// the "G" family of grouping ids such as GRP1.
type TextFrame struct {
	FrameHeader
	Text string
}

func (f TextFrame) Value() string { return f.Text }

func (f TextFrame) Encode() []byte {
	return concat([]byte{byte(utf16bom)}, utf16FromUTF8(f.Text), nul2)
}

// ExtendedTextFrame is a TXXX frame. Many may coexist in one tag; they
// are told apart by Description.
type ExtendedTextFrame struct {
	FrameHeader
	Description string
	Text        string
}

func (f ExtendedTextFrame) Value() string { return f.Text }

func (f ExtendedTextFrame) Encode() []byte {
	return concat([]byte{byte(utf16bom)},
		utf16FromUTF8(f.Description), nul2,
		utf16FromUTF8(f.Text), nul2)
}

type CommentFrame struct {
	FrameHeader
	Language    string
	Description string
	Text        string
}

func (f CommentFrame) Value() string { return f.Text }

func (f CommentFrame) Encode() []byte {
	lang := f.Language
	if len(lang) != 3 {
		lang = "XXX"
	}
	return concat([]byte{byte(utf16bom)}, []byte(lang),
		utf16FromUTF8(f.Description), nul2,
		utf16FromUTF8(f.Text), nul2)
}

// ObjectFrame is a GEOB general encapsulated object.
type ObjectFrame struct {
	FrameHeader
	MIMEType    string
	Filename    string
	Description string
	Data        []byte
}

func (f ObjectFrame) Value() string { return f.Filename }

func (f ObjectFrame) Encode() []byte {
	return concat([]byte{byte(utf16bom)}, latin1FromUTF8(f.MIMEType), nul,
		utf16FromUTF8(f.Filename), nul2,
		utf16FromUTF8(f.Description), nul2,
		f.Data)
}

// PictureFrame is an APIC attached picture.
type PictureFrame struct {
	FrameHeader
	MIMEType    string
	Kind        PictureKind
	Description string
	Data        []byte
}

func (f PictureFrame) Value() string { return f.Description }

func (f PictureFrame) Encode() []byte {
	return concat([]byte{byte(utf16bom)}, latin1FromUTF8(f.MIMEType), nul,
		[]byte{byte(f.Kind)},
		utf16FromUTF8(f.Description), nul2,
		f.Data)
}

// PopularityFrame is a POPM rating. Rating is the raw stored byte; the
// Tag accessors translate it to the 0-5 scale.
type PopularityFrame struct {
	FrameHeader
	Email  string
	Rating byte
}

func (f PopularityFrame) Value() string { return strconv.Itoa(int(f.Rating)) }

func (f PopularityFrame) Encode() []byte {
	return concat(latin1FromUTF8(f.Email), nul, []byte{f.Rating})
}

// GenericFrame preserves a frame this library has no grammar for, as
// an opaque blob written back verbatim.
type GenericFrame struct {
	FrameHeader
	Data []byte
}

func (f GenericFrame) Value() string { return string(f.Data) }

func (f GenericFrame) Encode() []byte {
	if f.id == invalidID {
		return nil
	}
	return f.Data
}

// PaddingFrame records the zero-fill run that closed the tag body when
// it was decoded. It is never written back as a frame; the writer
// derives fresh padding instead.
type PaddingFrame struct {
	FrameHeader
}

func (f PaddingFrame) Value() string { return "" }

func (f PaddingFrame) Encode() []byte { return nil }
