package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/loglang/golo"
)

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

// stdStream is the bare terminal Stream: PRINT/TYPE/SHOW go to stdout,
// READLIST/READWORD read one line from stdin (spec §6's consumer
// contract, satisfied here the simplest way a CLI host can).
type stdStream struct {
	out *bufio.Writer
	in  *bufio.Reader
}

func newStdStream() *stdStream {
	return &stdStream{out: bufio.NewWriter(os.Stdout), in: bufio.NewReader(os.Stdin)}
}

func (s *stdStream) Write(text ...string) error {
	for _, t := range text {
		if _, err := s.out.WriteString(t); err != nil {
			return err
		}
	}
	return s.out.Flush()
}

func (s *stdStream) Read(prompt string) (logo.Word, error) {
	if prompt != "" {
		if err := s.Write(prompt); err != nil {
			return "", err
		}
	}
	line, err := s.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return logo.Word(line), nil
}

func (s *stdStream) Clear() error { return nil }

func main() {
	e := logo.NewInterpreter(logo.WithStream(newStdStream()))

	if len(os.Args) > 1 {
		for _, arg := range os.Args[1:] {
			src, err := os.ReadFile(arg)
			if err != nil {
				die("Error opening %s: %v\n", arg, err)
			}
			if _, err := e.Run(string(src)); err != nil {
				die("Error while loading %s: %v\n", arg, err)
			}
		}
		return
	}

	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		die("Error reading stdin: %v\n", err)
	}
	if _, err := e.Run(string(src)); err != nil {
		die("Error while loading from stdin: %v\n", err)
	}
}
