package reformat_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/reformat"
)

func TestDecodeFileConfig(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    reformat.FileConfig
		wantErr require.ErrorAssertionFunc
	}{
		"full": {
			input: "from: csv\nto: json\ndelimiter: \"|\"\noutput_delimiter: \";\"\noutput: out.jsonl\n",
			want: reformat.FileConfig{
				From:            "csv",
				To:              "json",
				Delimiter:       "|",
				OutputDelimiter: ";",
				Output:          "out.jsonl",
			},
			wantErr: require.NoError,
		},
		"partial": {
			input:   "to: csv\n",
			want:    reformat.FileConfig{To: "csv"},
			wantErr: require.NoError,
		},
		"empty": {
			input:   "",
			want:    reformat.FileConfig{},
			wantErr: require.NoError,
		},
		"unknown key": {
			input:   "form: csv\n",
			want:    reformat.FileConfig{},
			wantErr: require.Error,
		},
		"not a mapping": {
			input:   "- csv\n",
			want:    reformat.FileConfig{},
			wantErr: require.Error,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := reformat.DecodeFileConfig(strings.NewReader(tt.input))
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "reformat.yaml", "from: json\ndelimiter: \"\\t\"\n")

	fc, err := reformat.LoadFileConfig(path)
	require.NoError(t, err)
	assert.Equal(t, reformat.FileConfig{From: "json", Delimiter: "\t"}, fc)

	_, err = reformat.LoadFileConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFileConfigConfig(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		fc      reformat.FileConfig
		want    reformat.Config
		wantErr error
	}{
		"defaults": {
			fc: reformat.FileConfig{},
			want: reformat.Config{
				Input:  reformat.FormatSpec{Format: reformat.Line, Delimiter: ','},
				Output: reformat.FormatSpec{Format: reformat.Line, Delimiter: ','},
			},
		},
		"output delimiter mirrors input": {
			fc: reformat.FileConfig{From: "CSV", To: "csv", Delimiter: "|", Output: "out.csv"},
			want: reformat.Config{
				Input:       reformat.FormatSpec{Format: reformat.CSV, Delimiter: '|'},
				Output:      reformat.FormatSpec{Format: reformat.CSV, Delimiter: '|'},
				Destination: "out.csv",
			},
		},
		"independent output delimiter": {
			fc: reformat.FileConfig{From: "csv", To: "csv", Delimiter: `\t`, OutputDelimiter: ";"},
			want: reformat.Config{
				Input:  reformat.FormatSpec{Format: reformat.CSV, Delimiter: '\t'},
				Output: reformat.FormatSpec{Format: reformat.CSV, Delimiter: ';'},
			},
		},
		"bad from":             {fc: reformat.FileConfig{From: "xml"}, wantErr: reformat.ErrUnsupportedFormat},
		"bad to":               {fc: reformat.FileConfig{To: "xml"}, wantErr: reformat.ErrUnsupportedFormat},
		"bad delimiter":        {fc: reformat.FileConfig{Delimiter: "||"}, wantErr: reformat.ErrInvalidDelimiter},
		"bad output delimiter": {fc: reformat.FileConfig{OutputDelimiter: `"`}, wantErr: reformat.ErrInvalidDelimiter},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.fc.Config()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
