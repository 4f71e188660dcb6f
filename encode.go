package reformat

import (
	"bytes"
	"fmt"
	"io"
	"iter"
)

// Encoder writes records to w in one format.
type Encoder interface {
	Encode(w io.Writer, records iter.Seq2[Record, error]) error
}

// NewEncoder returns the encoder for spec.
//
// The line encoder writes any variant in its natural textual form. The CSV
// and JSON encoders accept only [Fields] and [Object] records respectively
// and fail with [ErrVariantMismatch] on anything else.
func NewEncoder(spec FormatSpec) (Encoder, error) {
	switch spec.Format {
	case Line, CSV:
		comma, err := spec.comma()
		if err != nil {
			return nil, err
		}
		if spec.Format == Line {
			return plainEncoder{comma: comma}, nil
		}
		return csvEncoder{comma: comma}, nil
	case JSON:
		return jsonlEncoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, spec.Format)
	}
}

func mismatch(f Format, want Kind, got Record) error {
	return fmt.Errorf("%w: format %q requires %s records, got %s", ErrVariantMismatch, f, want, got.Kind())
}

// Write encodes records as spec and writes them to w.
func Write(w io.Writer, spec FormatSpec, records ...Record) error {
	enc, err := NewEncoder(spec)
	if err != nil {
		return err
	}
	return enc.Encode(w, Records(records...))
}

// Marshal encodes records as spec and returns the bytes.
func Marshal(spec FormatSpec, records ...Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, spec, records...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
