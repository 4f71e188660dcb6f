package reformat

import (
	"fmt"
	"iter"
)

// Transformer maps one record to another of the same variant.
type Transformer interface {
	Transform(Record) (Record, error)
}

// TransformerFunc adapts a plain function to the Transformer interface.
type TransformerFunc func(Record) (Record, error)

func (f TransformerFunc) Transform(r Record) (Record, error) { return f(r) }

// Identity returns every record unchanged.
var Identity Transformer = TransformerFunc(func(r Record) (Record, error) { return r, nil })

// Chain applies ts in order.
func Chain(ts ...Transformer) Transformer {
	return TransformerFunc(func(r Record) (Record, error) {
		for _, t := range ts {
			var err error
			if r, err = t.Transform(r); err != nil {
				return nil, err
			}
		}
		return r, nil
	})
}

// Transform applies t to each record in order. A nil t is [Identity]. The
// stream fails with [ErrVariantChanged] if t returns a record of a different
// variant than it was given.
func Transform(records iter.Seq2[Record, error], t Transformer) iter.Seq2[Record, error] {
	if t == nil {
		return records
	}
	return func(yield func(Record, error) bool) {
		for rec, err := range records {
			if err != nil {
				yield(nil, err)
				return
			}
			out, err := t.Transform(rec)
			if err != nil {
				yield(nil, err)
				return
			}
			if out == nil || out.Kind() != rec.Kind() {
				yield(nil, fmt.Errorf("%w: %s to %s", ErrVariantChanged, rec.Kind(), kindName(out)))
				return
			}
			if !yield(out, nil) {
				return
			}
		}
	}
}

func kindName(r Record) string {
	if r == nil {
		return "nil"
	}
	return r.Kind().String()
}
