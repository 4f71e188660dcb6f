package reformat

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat     = errors.New("unsupported format")
	ErrInvalidDelimiter      = errors.New("invalid delimiter")
	ErrSourceUnavailable     = errors.New("source unavailable")
	ErrDestinationUnwritable = errors.New("destination unwritable")
	ErrVariantMismatch       = errors.New("variant mismatch")
	ErrVariantChanged        = errors.New("transform changed record variant")
	ErrMalformedRow          = errors.New("malformed row")
)

// Format represents a record encoding.
type Format string

const (
	Line Format = "line"
	CSV  Format = "csv"
	JSON Format = "json"
)

// DefaultDelimiter is the CSV field separator used when none is configured.
const DefaultDelimiter = ','

var formats = []Format{Line, CSV, JSON}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name, ignoring case and surrounding space.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ParseDelimiter parses a single-character field delimiter. An empty string
// yields [DefaultDelimiter]; the two-character escape `\t` and the word "tab"
// both mean a tab character.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return DefaultDelimiter, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || !validDelimiter(r) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDelimiter, s)
	}
	return r, nil
}

// validDelimiter mirrors the rules encoding/csv applies to Comma.
func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// FormatSpec pairs a format with its field delimiter. The delimiter only
// affects CSV; a zero value means [DefaultDelimiter].
type FormatSpec struct {
	Format    Format
	Delimiter rune
}

// String returns the format name, with the delimiter for CSV.
func (s FormatSpec) String() string {
	if s.Format == CSV {
		return fmt.Sprintf("%s(%q)", s.Format, s.delimiter())
	}
	return s.Format.String()
}

func (s FormatSpec) delimiter() rune {
	if s.Delimiter == 0 {
		return DefaultDelimiter
	}
	return s.Delimiter
}

func (s FormatSpec) comma() (rune, error) {
	d := s.delimiter()
	if !validDelimiter(d) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDelimiter, d)
	}
	return d, nil
}
