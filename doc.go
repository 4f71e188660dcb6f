// Package reformat converts record streams between line text, CSV, and JSON
// Lines.
//
// A run reads one logical stream from zero or more sources, decodes it into
// [Record] values, passes them through a [Transformer], and encodes them to a
// sink:
//
//	sources → Decoder → Transformer → Encoder → sink
//
// Every stage is an [iter.Seq2] pulled by the encoder, so records flow one at
// a time.
//
// # Records
//
// A [Record] is one of three variants, chosen by the input format:
//
//   - [Text] ← line: one line of text
//   - [Fields] ← csv: one row, ragged rows kept as is
//   - [Object] ← json: one object, keys in input order
//
// A stream never mixes variants.
//
// # Sources
//
// [OpenSources] opens every named file before any line is read, so a missing
// file fails the run with [ErrSourceUnavailable] before any record is
// produced. An empty list reads standard input; the name "-" splices standard
// input into a list.
//
// # Decoding
//
// Use [NewDecoder] with a [FormatSpec]:
//
//   - line: one [Text] per line.
//   - csv: the stream is parsed as one document with the configured delimiter.
//     Blank lines become empty [Fields] rows, so no line is lost.
//   - json: each line is decoded on its own. Lines that are not a single JSON
//     object are logged at debug level and dropped.
//
// # Encoding
//
// Use [NewEncoder]. The line format writes each record's String form, so it
// accepts any variant. csv and json only accept [Fields] and [Object] and
// fail with [ErrVariantMismatch] otherwise. CSV fields containing the
// delimiter, a quote, or a newline are quoted.
//
// # Pipelines
//
// [New] builds a [Pipeline] from a [Config]; nothing is global:
//
//	p, err := reformat.New(reformat.Config{
//		Sources: []string{"a.csv", "b.csv"},
//		Input:   reformat.FormatSpec{Format: reformat.CSV, Delimiter: '|'},
//		Output:  reformat.FormatSpec{Format: reformat.CSV},
//	})
//	err = p.Run(ctx)
//
// For in-memory use there are [Read], [Unmarshal], [Write] and [Marshal].
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnsupportedFormat]: unknown format name
//   - [ErrInvalidDelimiter]: delimiter is not a single usable character
//   - [ErrSourceUnavailable]: an input cannot be opened or read
//   - [ErrDestinationUnwritable]: the sink cannot be created or written
//   - [ErrVariantMismatch]: the encoder cannot write the record variant
//   - [ErrVariantChanged]: a transformer changed a record's variant
//   - [ErrMalformedRow]: the CSV input is malformed, such as a quote left open
//
// Undecodable JSON lines are reported as [DecodeError] to the logger only.
package reformat
