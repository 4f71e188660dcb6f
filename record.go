package reformat

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Kind identifies the variant of a [Record].
type Kind int

const (
	KindText Kind = iota
	KindFields
	KindObject
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFields:
		return "fields"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Record is one decoded unit of input. The set of variants is closed:
// [Text], [Fields], and [Object]. String returns the record's natural
// textual form, which the line encoder writes.
type Record interface {
	Kind() Kind
	String() string
	record()
}

// Text is one line of free-form text without its terminator.
type Text string

func (Text) Kind() Kind       { return KindText }
func (t Text) String() string { return string(t) }
func (Text) record()          {}

// Fields is one tabular row. Rows in a stream may differ in length.
type Fields []string

func (Fields) Kind() Kind { return KindFields }

// String renders the row as a comma-separated CSV line.
func (f Fields) String() string {
	s, _ := formatRow(f, DefaultDelimiter)
	return s
}

func (Fields) record() {}

// Member is one key/value entry of an [Object].
type Member struct {
	Key   string
	Value any
}

// Object is one decoded JSON object with its keys in input order. Values are
// string, json.Number, bool, nil, []any, or a nested Object.
type Object []Member

func (Object) Kind() Kind { return KindObject }

// String renders the object as compact JSON.
func (o Object) String() string {
	b, err := o.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

func (Object) record() {}

// Get returns the value of the first member named key.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the members in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
