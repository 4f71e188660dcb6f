package reformat

import (
	"fmt"
	"io"
	"iter"
)

type plainDecoder struct{}

func (plainDecoder) Decode(lines iter.Seq2[SourceLine, error]) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for line, err := range lines {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(Text(line.Text), nil) {
				return
			}
		}
	}
}

// plainEncoder writes one record per line. Fields rows are joined with comma
// using CSV quoting and Objects are written as compact JSON.
type plainEncoder struct {
	comma rune
}

func (e plainEncoder) Encode(w io.Writer, records iter.Seq2[Record, error]) error {
	for rec, err := range records {
		if err != nil {
			return err
		}
		s, err := e.format(rec)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

func (e plainEncoder) format(rec Record) (string, error) {
	switch r := rec.(type) {
	case Fields:
		return formatRow(r, e.comma)
	case Object:
		b, err := r.MarshalJSON()
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return rec.String(), nil
	}
}
