package reformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// StdoutName is the sink name reported for standard output.
const StdoutName = "-"

// sink buffers writes to a file or to stdout. Every failure wraps
// ErrDestinationUnwritable.
type sink struct {
	name string
	bw   *bufio.Writer
	f    *os.File
}

// OpenSink opens the destination once. An empty name or "-" writes to stdout,
// which is flushed but not closed by Close. Any other name is created or
// truncated.
func OpenSink(name string, stdout io.Writer) (io.WriteCloser, error) {
	if name == "" || name == StdoutName {
		if stdout == nil {
			stdout = io.Discard
		}
		return &sink{name: StdoutName, bw: bufio.NewWriter(stdout)}, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	return &sink{name: name, bw: bufio.NewWriter(f), f: f}, nil
}

func (s *sink) Write(p []byte) (int, error) {
	n, err := s.bw.Write(p)
	if err != nil {
		return n, s.wrap(err)
	}
	return n, nil
}

func (s *sink) Close() error {
	var errs []error
	if err := s.bw.Flush(); err != nil {
		errs = append(errs, s.wrap(err))
	}
	if s.f != nil {
		if err := s.f.Close(); err != nil {
			errs = append(errs, s.wrap(err))
		}
		s.f = nil
	}
	return errors.Join(errs...)
}

func (s *sink) wrap(err error) error {
	if errors.Is(err, ErrDestinationUnwritable) {
		return err
	}
	return fmt.Errorf("%w: %q: %w", ErrDestinationUnwritable, s.name, err)
}
