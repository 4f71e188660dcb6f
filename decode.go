package reformat

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"log/slog"
)

// Decoder turns a logical line stream into records of one variant.
type Decoder interface {
	Decode(lines iter.Seq2[SourceLine, error]) iter.Seq2[Record, error]
}

// NewDecoder returns the decoder for spec. The logger receives diagnostics
// for dropped JSON lines; nil discards them.
func NewDecoder(spec FormatSpec, logger *slog.Logger) (Decoder, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	switch spec.Format {
	case Line:
		return plainDecoder{}, nil
	case CSV:
		comma, err := spec.comma()
		if err != nil {
			return nil, err
		}
		return csvDecoder{comma: comma}, nil
	case JSON:
		return jsonlDecoder{logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, spec.Format)
	}
}

// DecodeError reports one input line that could not be decoded. Only the JSON
// decoder produces it, and it never ends the stream.
type DecodeError struct {
	Source string
	Line   int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Read decodes everything in r as spec and returns the records.
func Read(r io.Reader, spec FormatSpec, logger *slog.Logger) ([]Record, error) {
	dec, err := NewDecoder(spec, logger)
	if err != nil {
		return nil, err
	}
	return Collect(dec.Decode(readerLines(StdinName, r)))
}

// Unmarshal decodes data as spec and returns the records.
func Unmarshal(spec FormatSpec, data []byte) ([]Record, error) {
	return Read(bytes.NewReader(data), spec, nil)
}
