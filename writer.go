package id3

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Write rewrites the tag in place, in the file it was read from.
func (t *Tag) Write() error {
	if t.path == "" {
		return errors.New("tag is not bound to a file")
	}
	return t.WriteTo(t.path)
}

// WriteTo writes the tag to target, followed by the source file's
// audio payload. The payload is located by re-reading the source
// header from disk, not from the in-memory snapshot, so edits made to
// the file since ReadFile do not corrupt the copy. When target is the
// source itself the payload is staged in a temporary file before the
// destination is truncated.
//
// Frames that fit into the source tag's existing length reuse it as
// padding, leaving the payload where it was; otherwise the tag grows
// to the next padding boundary plus one spare unit.
func (t *Tag) WriteTo(target string) (err error) {
	var payload io.Reader
	var oldBody int

	if t.path != "" {
		src, err := os.Open(t.path)
		if err != nil {
			return err
		}
		defer src.Close()

		oldBody, err = onDiskBodySize(src)
		if err != nil {
			return err
		}

		if samePath(t.path, target) {
			stage, err := stagePayload(src)
			if err != nil {
				return err
			}
			defer func() {
				stage.Close()
				os.Remove(stage.Name())
			}()
			payload = stage
			t.log.Debug("staged audio payload", "file", stage.Name())
		} else {
			payload = src
		}
	}

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dst.Close(); err == nil {
			err = cerr
		}
	}()

	body, err := t.encodeTag(dst, oldBody)
	if err != nil {
		return err
	}

	if payload != nil {
		if _, err := io.Copy(dst, payload); err != nil {
			return fmt.Errorf("copying audio payload: %w", err)
		}
	}

	if samePath(t.path, target) {
		t.header = TagHeader{Version: 4, size: body}
	}
	t.dirty = false
	return nil
}

// encodeTag writes the complete tag to w: a placeholder header, every
// frame, padding, and finally the real body length patched into the
// size field at offset 6. It leaves w positioned at the end of the
// tag and returns the body length.
func (t *Tag) encodeTag(w io.WriteSeeker, originalBody int) (int, error) {
	if err := writeTagHeader(w, 0); err != nil {
		return 0, err
	}

	enc := NewEncoder(w)
	for _, f := range t.frames {
		if err := enc.WriteFrame(f); err != nil {
			return 0, fmt.Errorf("writing %s frame: %w", f.ID(), err)
		}
	}

	written := enc.Written()
	var pad int
	if written < originalBody {
		pad = originalBody - written
		t.log.Debug("reusing padding", "frames", written, "padding", pad)
	} else {
		pad = nextPadding(written) - written
		t.log.Debug("growing tag", "frames", written, "padding", pad)
	}
	if _, err := w.Write(make([]byte, pad)); err != nil {
		return 0, err
	}
	body := written + pad

	if _, err := w.Seek(6, io.SeekStart); err != nil {
		return 0, err
	}
	sizeBytes := encodeSyncsafe(body)
	if _, err := w.Write(sizeBytes[:]); err != nil {
		return 0, err
	}
	if _, err := w.Seek(int64(tagHeaderSize+body), io.SeekStart); err != nil {
		return 0, err
	}

	return body, nil
}

// nextPadding returns the padded body length for frames that no longer
// fit their original tag: the next multiple of paddingUnit, plus one
// spare unit for future growth.
func nextPadding(written int) int {
	return (written/paddingUnit+1)*paddingUnit + paddingUnit
}

// onDiskBodySize reads the tag header from r and leaves r positioned
// at the start of the audio payload. Files without a tag, including
// files shorter than a header, position at 0 with a zero body size.
func onDiskBodySize(r io.ReadSeeker) (int, error) {
	header, err := NewDecoder(r).ParseHeader()
	if err != nil {
		var noTag NoTagError
		if !errors.As(err, &noTag) && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, err
		}
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return 0, err
		}
		return 0, nil
	}

	if _, err := r.Seek(tagHeaderSize+int64(header.size), io.SeekStart); err != nil {
		return 0, err
	}
	return header.size, nil
}

// stagePayload copies the remainder of src into a fresh temporary
// file and rewinds it for reading. The caller removes the file.
func stagePayload(src io.Reader) (*os.File, error) {
	name := filepath.Join(os.TempDir(), "id3-"+uuid.NewString())
	stage, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(stage, src); err != nil {
		stage.Close()
		os.Remove(name)
		return nil, fmt.Errorf("staging audio payload: %w", err)
	}
	if _, err := stage.Seek(0, io.SeekStart); err != nil {
		stage.Close()
		os.Remove(name)
		return nil, err
	}
	return stage, nil
}

// samePath reports whether two paths name the same file, preferring
// file identity over string equality when both exist.
func samePath(a, b string) bool {
	if a == b {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
