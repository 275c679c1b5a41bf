package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/bzhoek/go-id3"
	"github.com/sunfish-shogi/bufseekio"
)

var debug = flag.Bool("d", false, "show debug logging")

// check reports whether the audio payload of name starts with an
// MPEG-1 Layer 3 sync word, then walks the whole frame stream.
func check(name string) (bool, error) {
	tag, err := id3.ReadFile(name)
	if err != nil {
		return false, err
	}

	f, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer f.Close()

	r := bufseekio.NewReadSeeker(f, 128*1024, 4)
	if _, err := r.Seek(tag.AudioOffset(), io.SeekStart); err != nil {
		return false, err
	}

	var sync [2]byte
	if _, err := io.ReadFull(r, sync[:]); err != nil {
		return false, err
	}
	if sync != [2]byte{0xff, 0xfb} {
		fmt.Printf("%s: audio starts with % x, not an MPEG sync\n", name, sync)
		return false, nil
	}

	if _, err := r.Seek(tag.AudioOffset(), io.SeekStart); err != nil {
		return false, err
	}
	sc := id3.NewFrameScanner(r)
	if *debug {
		sc.SetLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	frames := 0
	var first id3.MPEGHeader
	for sc.Next() {
		if frames == 0 {
			first = sc.Header()
		}
		frames++
	}
	if err := sc.Err(); err != nil {
		return false, err
	}
	if frames == 0 {
		fmt.Printf("%s: no audio frames\n", name)
		return false, nil
	}

	fmt.Printf("%s: %d frames, %s\n", name, frames, first)
	return true, nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: id3check [-d] file")
		os.Exit(2)
	}

	ok, err := check(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		os.Exit(1)
	}
}
