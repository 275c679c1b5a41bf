package id3

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
)

// Tag is the decoded metadata of one file: the header as read plus the
// ordered frame list. Mutating accessors remove every frame matching
// their selector and append the replacement, so an edited frame moves
// to the end of the list.
type Tag struct {
	path   string
	header TagHeader
	frames []Frame
	dirty  bool
	log    *slog.Logger
}

// NewTag returns an empty tag not bound to any file.
func NewTag() *Tag {
	return &Tag{log: discard}
}

// ReadFile parses the tag of the named file. A file without an ID3v2
// header yields an empty tag and no error; writing it back treats the
// whole file as audio payload.
func ReadFile(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses a tag from an already open source. An optional path
// binds the tag to its file so that Write and in-place WriteTo can
// locate the audio payload.
func Read(r io.Reader, path ...string) (*Tag, error) {
	tag, err := NewDecoder(r).Parse()
	if err != nil {
		var noTag NoTagError
		if !errors.As(err, &noTag) {
			return nil, err
		}
	}
	if len(path) > 0 {
		tag.path = path[0]
	}
	return tag, nil
}

func (t *Tag) SetLogger(l *slog.Logger) { t.log = orDiscard(l) }

// Frames returns the decoded frame list, padding included, in file
// order.
func (t *Tag) Frames() []Frame { return t.frames }

// Header returns the tag header as it was read from disk. The zero
// value means the file had no tag.
func (t *Tag) Header() TagHeader { return t.header }

// Version returns the major version of the tag on disk: 3, 4, or 0
// when the file had no tag.
func (t *Tag) Version() byte { return t.header.Version }

// AudioOffset returns the file offset at which the audio payload
// begins: header plus body, or 0 for files without a tag.
func (t *Tag) AudioOffset() int64 {
	if t.header.Version == 0 {
		return 0
	}
	return tagHeaderSize + int64(t.header.size)
}

// Padding returns the number of slack bytes the tag body ended with
// when it was decoded.
func (t *Tag) Padding() int {
	for _, f := range t.frames {
		if p, ok := f.(PaddingFrame); ok {
			return p.Size()
		}
	}
	return 0
}

// Dirty reports whether the tag has been modified since it was read or
// last written.
func (t *Tag) Dirty() bool { return t.dirty }

func (t *Tag) HasFrame(id FrameType) bool {
	for _, f := range t.frames {
		if f.ID() == id {
			return true
		}
	}
	return false
}

// RemoveFrames drops every frame with the given id.
func (t *Tag) RemoveFrames(id FrameType) {
	t.removeMatching(func(f Frame) bool { return f.ID() == id })
}

// Clear drops all frames, padding included.
func (t *Tag) Clear() {
	t.frames = nil
	t.dirty = true
}

func (t *Tag) removeMatching(match func(Frame) bool) {
	var kept []Frame
	for _, f := range t.frames {
		if !match(f) {
			kept = append(kept, f)
		}
	}
	t.frames = kept
	t.dirty = true
}

func (t *Tag) appendFrame(f Frame) {
	t.frames = append(t.frames, f)
	t.dirty = true
}

// Text returns the value of the first text frame with the given id.
func (t *Tag) Text(id FrameType) string {
	for _, f := range t.frames {
		if tf, ok := f.(TextFrame); ok && tf.id == id {
			return tf.Text
		}
	}
	return ""
}

// SetText replaces every frame with the given id by a single text
// frame holding value.
func (t *Tag) SetText(id FrameType, value string) {
	t.RemoveFrames(id)
	t.appendFrame(TextFrame{FrameHeader{id: id}, value})
}

func (t *Tag) Title() string { return t.Text("TIT2") }

func (t *Tag) SetTitle(title string) { t.SetText("TIT2", title) }

func (t *Tag) Artist() string { return t.Text("TPE1") }

func (t *Tag) SetArtist(artist string) { t.SetText("TPE1", artist) }

func (t *Tag) Album() string { return t.Text("TALB") }

func (t *Tag) SetAlbum(album string) { t.SetText("TALB", album) }

func (t *Tag) Subtitle() string { return t.Text("TIT3") }

func (t *Tag) SetSubtitle(subtitle string) { t.SetText("TIT3", subtitle) }

func (t *Tag) Genre() string { return t.Text("TCON") }

func (t *Tag) SetGenre(genre string) { t.SetText("TCON", genre) }

// Key returns the initial musical key, as mixed-in-key tools write it.
func (t *Tag) Key() string { return t.Text("TKEY") }

// Grouping returns the iTunes grouping.
func (t *Tag) Grouping() string { return t.Text("GRP1") }

func (t *Tag) SetGrouping(grouping string) { t.SetText("GRP1", grouping) }

// Comment returns the value of the first comment frame.
func (t *Tag) Comment() string {
	for _, f := range t.frames {
		if c, ok := f.(CommentFrame); ok {
			return c.Text
		}
	}
	return ""
}

// Track returns the TRCK value, "4" or "4/9" style.
func (t *Tag) Track() string { return t.Text("TRCK") }

// SetTrack sets the track number, with the set total appended when it
// is positive.
func (t *Tag) SetTrack(track, total int) {
	value := strconv.Itoa(track)
	if total > 0 {
		value += "/" + strconv.Itoa(total)
	}
	t.SetText("TRCK", value)
}

// ExtendedText returns the value of the TXXX frame with the given
// description. TXXX frames are keyed by description; many coexist.
func (t *Tag) ExtendedText(description string) string {
	for _, f := range t.frames {
		if x, ok := f.(ExtendedTextFrame); ok && x.Description == description {
			return x.Text
		}
	}
	return ""
}

func (t *Tag) SetExtendedText(description, value string) {
	t.removeMatching(func(f Frame) bool {
		x, ok := f.(ExtendedTextFrame)
		return ok && x.Description == description
	})
	t.appendFrame(ExtendedTextFrame{FrameHeader{id: "TXXX"}, description, value})
}

// Popularity returns the 0-5 rating stored for email, 0 when absent.
func (t *Tag) Popularity(email string) int {
	for _, f := range t.frames {
		if p, ok := f.(PopularityFrame); ok && p.Email == email {
			return int(p.Rating) / 51
		}
	}
	return 0
}

// SetPopularity stores a 0-5 rating for email. The on-disk byte is the
// rating times 51, so 5 maps to 255.
func (t *Tag) SetPopularity(email string, rating int) {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	t.removeMatching(func(f Frame) bool {
		p, ok := f.(PopularityFrame)
		return ok && p.Email == email
	})
	t.appendFrame(PopularityFrame{FrameHeader{id: "POPM"}, email, byte(rating * 51)})
}

// Object returns the GEOB frame with the given filename, or nil.
func (t *Tag) Object(filename string) *ObjectFrame {
	for _, f := range t.frames {
		if o, ok := f.(ObjectFrame); ok && o.Filename == filename {
			return &o
		}
	}
	return nil
}

// ObjectByDescription returns the GEOB frame with the given
// description, or nil.
func (t *Tag) ObjectByDescription(description string) *ObjectFrame {
	for _, f := range t.frames {
		if o, ok := f.(ObjectFrame); ok && o.Description == description {
			return &o
		}
	}
	return nil
}

// AttachObject stores an encapsulated object, replacing any object
// with the same filename.
func (t *Tag) AttachObject(mime, filename, description string, data []byte) {
	t.removeMatching(func(f Frame) bool {
		o, ok := f.(ObjectFrame)
		return ok && o.Filename == filename
	})
	t.appendFrame(ObjectFrame{FrameHeader{id: "GEOB"}, mime, filename, description, data})
}

// Picture returns the attached picture of the given kind, or nil.
func (t *Tag) Picture(kind PictureKind) *PictureFrame {
	for _, f := range t.frames {
		if p, ok := f.(PictureFrame); ok && p.Kind == kind {
			return &p
		}
	}
	return nil
}

// AttachPicture stores a picture, replacing any picture of the same
// kind.
func (t *Tag) AttachPicture(mime string, kind PictureKind, description string, data []byte) {
	t.removeMatching(func(f Frame) bool {
		p, ok := f.(PictureFrame)
		return ok && p.Kind == kind
	})
	t.appendFrame(PictureFrame{FrameHeader{id: "APIC"}, mime, kind, description, data})
}
