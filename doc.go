/*
Package id3 reads, edits and rewrites ID3v2 tags in MP3 files, and
scans the MPEG audio frames that follow them.

Supported versions

This library supports reading v2.3 and v2.4 tags, but only writing
v2.4 tags.

The primary reason for not allowing writing older versions is that
they cannot represent all data that is available with v2.4, and
designing the API in a way that's both user friendly and able to
reject data is not worth the trouble.

One consequence of this is that when you read a file with v2.3 tags
and immediately save it, it will now be a file with valid v2.4 tags.

Reading and writing

ReadFile parses the tag at the start of a file into a Tag, an ordered
list of typed frames behind getter and setter methods. A file without
a tag is not an error; it produces an empty Tag that frames can be
added to. Frames this library does not model are preserved as opaque
blobs and written back verbatim.

Write re-encodes every frame with freshly computed sizes and reuses
the tag's original on-disk length as padding whenever the frames
still fit, so small edits never move the audio payload. When they no
longer fit, the tag grows to the next kilobyte boundary with a
kilobyte of slack, and the audio is staged through a temporary file
before the original is truncated.

Scanning audio

FrameScanner walks the MPEG frame headers of the audio stream
itself, independently of any tag. It recovers from sync patterns
that occur by chance inside audio data and from headers split across
read boundaries, which makes it suitable for validating the payload
after a rewrite.
*/
package id3
