package reformat

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig holds conversion defaults as written in a YAML file:
//
//	from: csv
//	delimiter: "|"
//	to: json
//	output: out.jsonl
type FileConfig struct {
	From            string `yaml:"from"`
	To              string `yaml:"to"`
	Delimiter       string `yaml:"delimiter"`
	OutputDelimiter string `yaml:"output_delimiter"`
	Output          string `yaml:"output"`
}

// LoadFileConfig reads a YAML config file. Unknown keys are rejected and an
// empty file yields the zero FileConfig.
func LoadFileConfig(path string) (FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return DecodeFileConfig(f)
}

// DecodeFileConfig is [LoadFileConfig] for an already opened reader.
func DecodeFileConfig(r io.Reader) (FileConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("config: %w", err)
	}
	return fc, nil
}

// Config parses the names in fc into a [Config] with the formats,
// delimiters and destination set. Empty formats default to [Line] and an
// empty output delimiter mirrors the input delimiter.
func (fc FileConfig) Config() (Config, error) {
	in, err := parseFormatOr(fc.From, Line)
	if err != nil {
		return Config{}, err
	}
	out, err := parseFormatOr(fc.To, Line)
	if err != nil {
		return Config{}, err
	}
	inDelim, err := ParseDelimiter(fc.Delimiter)
	if err != nil {
		return Config{}, err
	}
	outDelim := inDelim
	if fc.OutputDelimiter != "" {
		if outDelim, err = ParseDelimiter(fc.OutputDelimiter); err != nil {
			return Config{}, err
		}
	}
	return Config{
		Input:       FormatSpec{Format: in, Delimiter: inDelim},
		Output:      FormatSpec{Format: out, Delimiter: outDelim},
		Destination: fc.Output,
	}, nil
}

func parseFormatOr(s string, def Format) (Format, error) {
	if s == "" {
		return def, nil
	}
	return ParseFormat(s)
}
