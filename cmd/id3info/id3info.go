package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bzhoek/go-id3"
	"github.com/davecgh/go-spew/spew"
)

var verbose = flag.Bool("v", false, "dump every frame")

func printFile(name string) {
	fmt.Println(name)
	tag, err := id3.ReadFile(name)
	if err != nil {
		fmt.Println(err)
		return
	}

	if tag.Version() == 0 {
		fmt.Println("no ID3 tag")
		return
	}

	fmt.Printf("title: %s\n", tag.Title())
	fmt.Printf("artist: %s\n", tag.Artist())
	fmt.Printf("subtitle: %s\n", tag.Subtitle())
	fmt.Printf("audio offset: %d\n", tag.AudioOffset())

	if *verbose {
		for _, frame := range tag.Frames() {
			spew.Dump(frame)
		}
	}
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: id3info [-v] file...")
		os.Exit(2)
	}

	for _, name := range flag.Args() {
		printFile(name)
		fmt.Println()
	}
}
