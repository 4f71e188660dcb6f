package reformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// StdinName names the standard input source. It may also appear in a source
// list to splice standard input between files.
const StdinName = "-"

// SourceLine is one line of input with its terminator stripped. Number is
// 1-based within Source.
type SourceLine struct {
	Source string
	Number int
	Text   string
}

type source struct {
	name string
	r    io.Reader
	c    io.Closer
}

// Sources is an ordered list of opened inputs read as one logical stream.
type Sources struct {
	srcs []source
}

// OpenSources opens every named source in order. An empty list reads stdin.
// If any source cannot be opened, the ones already opened are closed and the
// returned error wraps [ErrSourceUnavailable]; nothing has been read.
func OpenSources(names []string, stdin io.Reader) (*Sources, error) {
	if len(names) == 0 {
		names = []string{StdinName}
	}
	if stdin == nil {
		stdin = io.MultiReader()
	}
	s := &Sources{srcs: make([]source, 0, len(names))}
	for _, name := range names {
		if name == StdinName {
			s.srcs = append(s.srcs, source{name: name, r: stdin})
			continue
		}
		f, err := openFile(name)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		s.srcs = append(s.srcs, source{name: name, r: f, c: f})
	}
	return s, nil
}

func openFile(name string) (*os.File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s: is a directory", name)
	}
	return f, nil
}

// Names returns the source names in read order.
func (s *Sources) Names() []string {
	names := make([]string, len(s.srcs))
	for i, src := range s.srcs {
		names[i] = src.name
	}
	return names
}

// Lines yields every line of every source, one source fully before the next.
// A read failure ends the sequence with an error wrapping
// [ErrSourceUnavailable].
func (s *Sources) Lines() iter.Seq2[SourceLine, error] {
	return func(yield func(SourceLine, error) bool) {
		for _, src := range s.srcs {
			br := bufio.NewReader(src.r)
			n := 0
			for {
				text, err := br.ReadString('\n')
				if len(text) > 0 {
					n++
					if !yield(SourceLine{Source: src.name, Number: n, Text: trimEOL(text)}, nil) {
						return
					}
				}
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					yield(SourceLine{}, fmt.Errorf("%w: %q: %w", ErrSourceUnavailable, src.name, err))
					return
				}
			}
		}
	}
}

// Close closes every opened file. Standard input is left open.
func (s *Sources) Close() error {
	var errs []error
	for _, src := range s.srcs {
		if src.c != nil {
			errs = append(errs, src.c.Close())
		}
	}
	s.srcs = nil
	return errors.Join(errs...)
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

func readerLines(name string, r io.Reader) iter.Seq2[SourceLine, error] {
	s := &Sources{srcs: []source{{name: name, r: r}}}
	return s.Lines()
}
