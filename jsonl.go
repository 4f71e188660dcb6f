package reformat

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strconv"

	"github.com/goccy/go-json"
)

var (
	errInvalidJSON = errors.New("invalid JSON")
	errNotObject   = errors.New("not a JSON object")
)

type jsonlDecoder struct {
	logger *slog.Logger
}

// Decode parses each line on its own. Lines that are not a single JSON object
// are logged at debug level and dropped; the stream carries on.
func (d jsonlDecoder) Decode(lines iter.Seq2[SourceLine, error]) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		var total, dropped int
		for line, err := range lines {
			if err != nil {
				yield(nil, err)
				return
			}
			total++
			rec, derr := decodeJSONLine(line)
			if derr != nil {
				dropped++
				d.logger.Debug("json: dropping line", "source", derr.Source, "line", derr.Line, "error", derr.Err)
				continue
			}
			if !yield(rec, nil) {
				return
			}
		}
		if dropped > 0 {
			d.logger.Info("json: dropped undecodable lines", "dropped", dropped, "lines", total)
		}
	}
}

func decodeJSONLine(line SourceLine) (Object, *DecodeError) {
	obj, err := parseObject([]byte(line.Text))
	if err != nil {
		return nil, &DecodeError{Source: line.Source, Line: line.Number, Err: err}
	}
	return obj, nil
}

func parseObject(b []byte) (Object, error) {
	if !json.Valid(b) {
		return nil, errInvalidJSON
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	v, err := readValue(dec, tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", errInvalidJSON)
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNotObject, jsonType(v))
	}
	return obj, nil
}

// readValue builds the value that starts with tok, keeping object key order.
func readValue(dec *json.Decoder, tok any) (any, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := Object{}
			for {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				if d, ok := kt.(json.Delim); ok && d == '}' {
					return obj, nil
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("%w: object key %v", errInvalidJSON, kt)
				}
				vt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				val, err := readValue(dec, vt)
				if err != nil {
					return nil, err
				}
				obj = append(obj, Member{Key: key, Value: val})
			}
		case '[':
			arr := []any{}
			for {
				et, err := dec.Token()
				if err != nil {
					return nil, err
				}
				if d, ok := et.(json.Delim); ok && d == ']' {
					return arr, nil
				}
				val, err := readValue(dec, et)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
		}
		return nil, fmt.Errorf("%w: unexpected %q", errInvalidJSON, v)
	case float64:
		return json.Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	default:
		return v, nil
	}
}

func jsonType(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

type jsonlEncoder struct{}

func (jsonlEncoder) Encode(w io.Writer, records iter.Seq2[Record, error]) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for rec, err := range records {
		if err != nil {
			return err
		}
		obj, ok := rec.(Object)
		if !ok {
			return mismatch(JSON, KindObject, rec)
		}
		if err := enc.Encode(obj); err != nil {
			return err
		}
	}
	return nil
}
