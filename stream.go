package reformat

import (
	"io"
	"iter"
)

// Records returns a sequence over rs.
func Records(rs ...Record) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for _, r := range rs {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// Collect drains seq into a slice and stops at the first error.
func Collect(seq iter.Seq2[Record, error]) ([]Record, error) {
	var out []Record
	for r, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// lineReader presents a line sequence as an io.Reader, each line followed by
// a newline. It records the number of lines delivered and the first error
// from the sequence.
type lineReader struct {
	next  func() (SourceLine, error, bool)
	stop  func()
	buf   []byte
	lines int
	err   error
}

func newLineReader(lines iter.Seq2[SourceLine, error]) *lineReader {
	next, stop := iter.Pull2(lines)
	return &lineReader{next: next, stop: stop}
}

func (r *lineReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		line, err, ok := r.next()
		if !ok {
			return 0, io.EOF
		}
		if err != nil {
			r.err = err
			return 0, err
		}
		r.lines++
		r.buf = append(r.buf[:0], line.Text...)
		r.buf = append(r.buf, '\n')
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

func (r *lineReader) Close() { r.stop() }
