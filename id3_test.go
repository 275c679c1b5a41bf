package id3

import (
	"bytes"
	"testing"
)

var (
	UTF8TestString  = "Ein etwas kürzerer Text mit wenigen Umlauten: äöüß äöüß"
	UTF16TestString = []byte{254, 255, 0, 69, 0, 105, 0, 110, 0, 32,
		0, 101, 0, 116, 0, 119, 0, 97, 0, 115, 0, 32, 0, 107, 0, 252, 0,
		114, 0, 122, 0, 101, 0, 114, 0, 101, 0, 114, 0, 32, 0, 84, 0, 101,
		0, 120, 0, 116, 0, 32, 0, 109, 0, 105, 0, 116, 0, 32, 0, 119, 0,
		101, 0, 110, 0, 105, 0, 103, 0, 101, 0, 110, 0, 32, 0, 85, 0, 109,
		0, 108, 0, 97, 0, 117, 0, 116, 0, 101, 0, 110, 0, 58, 0, 32, 0,
		228, 0, 246, 0, 252, 0, 223, 0, 32, 0, 228, 0, 246, 0, 252, 0,
		223}
	ISOTestString = []byte("Ein etwas k\xFCrzerer Text mit wenigen Umlauten: \xE4\xF6\xFC\xDF \xE4\xF6\xFC\xDF")
)

func TestSyncsafeVectors(t *testing.T) {
	tests := []struct {
		in  int
		out [4]byte
	}{
		{0, [4]byte{0, 0, 0, 0}},
		{66872, [4]byte{0x00, 0x04, 0x0a, 0x38}},
		{0b1111111_1111111, [4]byte{0, 0, 127, 127}},
		{1<<28 - 1, [4]byte{127, 127, 127, 127}},
	}

	for _, test := range tests {
		if out := encodeSyncsafe(test.in); out != test.out {
			t.Errorf("encodeSyncsafe(%d) = % x, expected % x", test.in, out, test.out)
		}
		if in := decodeSyncsafe(test.out); in != test.in {
			t.Errorf("decodeSyncsafe(% x) = %d, expected %d", test.out, in, test.in)
		}
	}
}

func TestSyncsafeRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 127, 128, 1114, 16383, 16384, 66872, 1048575, 1<<28 - 1} {
		res := decodeSyncsafe(encodeSyncsafe(n))
		if res != n {
			t.Fatalf("%d round-tripped to %d", n, res)
		}
	}
}

func TestISO88591ToUTF8(t *testing.T) {
	res, err := latin1.toUTF8(ISOTestString)
	if err != nil {
		t.Fatal(err)
	}
	if res != UTF8TestString {
		t.Errorf("Expected: %s - Got: %s", UTF8TestString, res)
	}
}

func TestUTF8ToISO88591(t *testing.T) {
	res := latin1FromUTF8(UTF8TestString)
	if !bytes.Equal(res, ISOTestString) {
		t.Errorf("Expected: %s - Got: %s", ISOTestString, res)
	}
}

func TestUTF16ToUTF8(t *testing.T) {
	in := []byte{254, 255, 0, 74, 0,
		117, 0, 115, 0, 116, 0, 32, 0, 97, 0, 32, 0, 116, 0, 101, 0, 115,
		0, 116, 0, 58, 0, 32, 0, 228, 0, 252, 0, 246, 0, 32, 101, 229,
		103, 44, 138, 158}
	out := "Just a test: äüö 日本語"

	res, err := utf16bom.toUTF8(in)
	if err != nil {
		t.Fatal(err)
	}
	if res != out {
		t.Errorf("Expected: %s - Got: %s", out, res)
	}
}

func TestUTF16LEToUTF8(t *testing.T) {
	in := []byte{255, 254, 74, 0, 117, 0, 115, 0, 116, 0, 32, 0, 97,
		0, 32, 0, 116, 0, 101, 0, 115, 0, 116, 0, 58, 0, 32, 0, 228, 0,
		252, 0, 246, 0, 32, 0, 229, 101, 44, 103, 158, 138}
	out := "Just a test: äüö 日本語"

	res, err := utf16bom.toUTF8(in)
	if err != nil {
		t.Fatal(err)
	}
	if res != out {
		t.Errorf("Expected: %s - Got: %s", out, res)
	}
}

func TestUTF16BEToUTF8(t *testing.T) {
	in := []byte{0, 74, 0,
		117, 0, 115, 0, 116, 0, 32, 0, 97, 0, 32, 0, 116, 0, 101, 0, 115,
		0, 116, 0, 58, 0, 32, 0, 228, 0, 252, 0, 246, 0, 32, 101, 229,
		103, 44, 138, 158}
	out := "Just a test: äüö 日本語"

	res, err := utf16be.toUTF8(in)
	if err != nil {
		t.Fatal(err)
	}
	if res != out {
		t.Errorf("Expected: %s - Got: %s", out, res)
	}
}

func TestUTF16MissingBOM(t *testing.T) {
	_, err := utf16bom.toUTF8([]byte{0, 74, 0, 117})
	if err == nil {
		t.Fatal("Decoding UTF-16 text without a BOM should fail")
	}
}

func TestUTF16FromUTF8(t *testing.T) {
	in := "Just a test: äüö 日本語"

	raw := utf16FromUTF8(in)
	if len(raw) < 2 || raw[0] != 0xff || raw[1] != 0xfe {
		t.Fatalf("Expected a little-endian BOM, got % x", raw[:2])
	}

	res, err := utf16bom.toUTF8(raw)
	if err != nil {
		t.Fatal(err)
	}
	if res != in {
		t.Errorf("Expected: %s - Got: %s", in, res)
	}
}

func TestUTF16FromUTF8Empty(t *testing.T) {
	raw := utf16FromUTF8("")
	if !bytes.Equal(raw, []byte{0xff, 0xfe}) {
		t.Errorf("Expected a bare BOM for the empty string, got % x", raw)
	}
}

func TestFrameTypeString(t *testing.T) {
	tests := []struct {
		in  FrameType
		out string
	}{
		{"TIT2", "Title/songname/content description"},
		{"GRP1", "Grouping"},
		{"ZZZZ", "ZZZZ"},
	}

	for _, test := range tests {
		if res := test.in.String(); res != test.out {
			t.Errorf("Expected: %s - Got: %s", test.out, res)
		}
	}
}

func TestValidFrameID(t *testing.T) {
	tests := []struct {
		in  FrameType
		out bool
	}{
		{"TIT2", true},
		{"GRP1", true},
		{"TXXX", true},
		{"tit2", false},
		{FrameType([]byte{1, 2, 3, 4}), false},
		{FrameType([]byte{'T', 'I', 'T', 0}), false},
	}

	for _, test := range tests {
		if res := validFrameID(test.in); res != test.out {
			t.Errorf("validFrameID(%q) = %t, expected %t", test.in, res, test.out)
		}
	}
}

func BenchmarkISO88591ToUTF8(b *testing.B) {
	b.SetBytes(int64(len(ISOTestString)))
	for i := 0; i < b.N; i++ {
		_, _ = latin1.toUTF8(ISOTestString)
	}
}

func BenchmarkUTF8ToISO88591(b *testing.B) {
	b.SetBytes(int64(len(UTF8TestString)))
	for i := 0; i < b.N; i++ {
		_ = latin1FromUTF8(UTF8TestString)
	}
}

func BenchmarkUTF16ToUTF8(b *testing.B) {
	b.SetBytes(int64(len(UTF16TestString)))
	for i := 0; i < b.N; i++ {
		_, _ = utf16bom.toUTF8(UTF16TestString)
	}
}
