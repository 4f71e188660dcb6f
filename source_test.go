package reformat_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/reformat"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func collectLines(t *testing.T, s *reformat.Sources) []reformat.SourceLine {
	t.Helper()
	var out []reformat.SourceLine
	for line, err := range s.Lines() {
		require.NoError(t, err)
		out = append(out, line)
	}
	return out
}

func texts(lines []reformat.SourceLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestOpenSourcesConcatenatesInOrder(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a1\na2\n")
	b := writeFile(t, dir, "b.txt", "b1\n")

	tests := map[string]struct {
		names []string
		want  []string
	}{
		"a then b": {names: []string{a, b}, want: []string{"a1", "a2", "b1"}},
		"b then a": {names: []string{b, a}, want: []string{"b1", "a1", "a2"}},
		"repeated": {names: []string{a, a}, want: []string{"a1", "a2", "a1", "a2"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s, err := reformat.OpenSources(tt.names, nil)
			require.NoError(t, err)
			defer s.Close()
			assert.Equal(t, tt.want, texts(collectLines(t, s)))
		})
	}
}

func TestOpenSourcesLineMetadata(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a1\na2")
	b := writeFile(t, dir, "b.txt", "b1\n")

	s, err := reformat.OpenSources([]string{a, b}, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, []string{a, b}, s.Names())
	assert.Equal(t, []reformat.SourceLine{
		{Source: a, Number: 1, Text: "a1"},
		{Source: a, Number: 2, Text: "a2"},
		{Source: b, Number: 1, Text: "b1"},
	}, collectLines(t, s))
}

func TestOpenSourcesMissingIsFatal(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a1\n")
	missing := filepath.Join(dir, "missing.txt")

	for _, names := range [][]string{{missing}, {a, missing}, {a, a, missing, a}} {
		s, err := reformat.OpenSources(names, strings.NewReader("stdin\n"))
		require.ErrorIs(t, err, reformat.ErrSourceUnavailable)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "missing.txt")
		assert.Nil(t, s)
	}
}

func TestOpenSourcesDirectory(t *testing.T) {
	t.Parallel()
	_, err := reformat.OpenSources([]string{t.TempDir()}, nil)
	assert.ErrorIs(t, err, reformat.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestOpenSourcesDefaultsToStdin(t *testing.T) {
	t.Parallel()
	s, err := reformat.OpenSources(nil, strings.NewReader("x\ny\n"))
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, []string{reformat.StdinName}, s.Names())
	assert.Equal(t, []string{"x", "y"}, texts(collectLines(t, s)))
}

func TestOpenSourcesNilStdinIsEmpty(t *testing.T) {
	t.Parallel()
	s, err := reformat.OpenSources(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, collectLines(t, s))
}

func TestOpenSourcesDashSplicesStdin(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a1\n")
	b := writeFile(t, dir, "b.txt", "b1\n")

	s, err := reformat.OpenSources([]string{a, reformat.StdinName, b}, strings.NewReader("s1\ns2"))
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, []string{"a1", "s1", "s2", "b1"}, texts(collectLines(t, s)))
}

func TestLinesStripTerminators(t *testing.T) {
	t.Parallel()
	s, err := reformat.OpenSources(nil, strings.NewReader("crlf\r\nlf\n\nnone"))
	require.NoError(t, err)
	assert.Equal(t, []string{"crlf", "lf", "", "none"}, texts(collectLines(t, s)))
}

func TestLinesFileWithoutTrailingNewline(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a1")
	b := writeFile(t, dir, "b.txt", "b1")

	s, err := reformat.OpenSources([]string{a, b}, nil)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, []string{"a1", "b1"}, texts(collectLines(t, s)))
}

func TestLinesReadError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	s, err := reformat.OpenSources(nil, iotest.ErrReader(boom))
	require.NoError(t, err)

	var gotErr error
	for _, err := range s.Lines() {
		if err != nil {
			gotErr = err
		}
	}
	assert.ErrorIs(t, gotErr, reformat.ErrSourceUnavailable)
	assert.ErrorIs(t, gotErr, boom)
}

func TestLinesStopEarly(t *testing.T) {
	t.Parallel()
	s, err := reformat.OpenSources(nil, strings.NewReader("1\n2\n3\n"))
	require.NoError(t, err)

	var got []string
	for line, err := range s.Lines() {
		require.NoError(t, err)
		got = append(got, line.Text)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"1", "2"}, got)
}

func TestSourcesCloseTwice(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a1\n")
	s, err := reformat.OpenSources([]string{a}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
