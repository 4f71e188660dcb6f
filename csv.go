package reformat

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

type csvDecoder struct {
	comma rune
}

// Decode parses the whole line stream as one CSV document. encoding/csv skips
// empty lines, so the gaps between rows are filled with empty Fields to keep
// one record per physical line. A quoted field still open at the end of input
// fails with ErrMalformedRow.
func (d csvDecoder) Decode(lines iter.Seq2[SourceLine, error]) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		src := newLineReader(lines)
		defer src.Close()

		r := csv.NewReader(src)
		r.Comma = d.comma
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		// end is the last physical line covered by an emitted record.
		end := 0
		for {
			row, err := r.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if src.err != nil {
				yield(nil, src.err)
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("%w: %w", ErrMalformedRow, err))
				return
			}
			start, _ := r.FieldPos(0)
			for ; end < start-1; end++ {
				if !yield(Fields{}, nil) {
					return
				}
			}
			last := len(row) - 1
			line, col := r.FieldPos(last)
			end = line + strings.Count(row[last], "\n")
			// Every line handed to the reader ends in a newline, so a quoted
			// field that ran into EOF has swallowed one past the last line.
			if end > src.lines {
				yield(nil, fmt.Errorf("%w: %w", ErrMalformedRow, &csv.ParseError{
					StartLine: line,
					Line:      src.lines,
					Column:    col,
					Err:       csv.ErrQuote,
				}))
				return
			}
			if !yield(Fields(row), nil) {
				return
			}
		}
		if src.err != nil {
			yield(nil, src.err)
			return
		}
		for ; end < src.lines; end++ {
			if !yield(Fields{}, nil) {
				return
			}
		}
	}
}

type csvEncoder struct {
	comma rune
}

func (e csvEncoder) Encode(w io.Writer, records iter.Seq2[Record, error]) error {
	for rec, err := range records {
		if err != nil {
			return err
		}
		row, ok := rec.(Fields)
		if !ok {
			return mismatch(CSV, KindFields, rec)
		}
		if err := writeCSVRow(w, e.comma, row); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVRow writes a single CSV row with minimal quoting. A row holding one
// empty field is written as "" so it does not read back as a blank line.
func writeCSVRow(w io.Writer, comma rune, row []string) error {
	if len(row) == 1 && row[0] == "" {
		_, err := io.WriteString(w, "\"\"\n")
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func formatRow(row []string, comma rune) (string, error) {
	var sb strings.Builder
	if err := writeCSVRow(&sb, comma, row); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
