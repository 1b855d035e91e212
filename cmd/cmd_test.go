package cmd

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/librarr/catalog"
	"github.com/s0up4200/librarr/config"
	"github.com/s0up4200/librarr/filter"
)

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = parseID("#7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolveAuthor(t *testing.T) {
	authors := []catalog.Author{{ID: 1, Name: "Jane Austen"}, {ID: 2, Name: "José Saramago"}}

	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"jane austen", 1, false},
		{"Jose Saramago", 2, false},
		{"3", 0, true},
		{"Nobody", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			id, err := resolveAuthor(authors, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestResolveGenre(t *testing.T) {
	genres := []catalog.Genre{{ID: 4, Name: "Science Fiction"}}

	id, err := resolveGenre(genres, "science fiction")
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)

	id, err = resolveGenre(genres, "4")
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)

	_, err = resolveGenre(genres, "Horror")
	assert.Error(t, err)
}

func TestCompileFilterPresets(t *testing.T) {
	cfg = &config.Config{Filter: config.FilterConfig{Presets: map[string]string{
		"austen": `contains(Author, "austen")`,
	}}}
	t.Cleanup(func() { cfg = nil })

	books := []catalog.Book{
		{ID: 1, AuthorID: 1, AuthorName: strPtr("Jane Austen")},
		{ID: 2, AuthorID: 2, AuthorName: strPtr("Neil Gaiman")},
	}

	f, err := compileFilter("", "Austen")
	require.NoError(t, err)
	assert.Len(t, filter.Apply(f, books, filter.BookEnv), 1)

	f, err = compileFilter(`ID == 2`, "austen")
	require.NoError(t, err)
	got := filter.Apply(f, books, filter.BookEnv)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID, "explicit filter wins over preset")

	f, err = compileFilter("", "")
	require.NoError(t, err)
	assert.Len(t, filter.Apply(f, books, filter.BookEnv), 2)

	_, err = compileFilter("", "missing")
	assert.ErrorContains(t, err, "preset 'missing' not found")

	_, err = compileFilter(`ID ==`, "")
	assert.ErrorContains(t, err, "invalid filter expression")
}

func strPtr(s string) *string { return &s }

func newTestConsole(input string, interactive, yes bool) (*console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &console{
		in:          bufio.NewReader(strings.NewReader(input)),
		out:         out,
		assumeYes:   yes,
		interactive: interactive,
	}, out
}

func TestConsoleConfirm(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		interactive bool
		yes         bool
		want        bool
	}{
		{"yes", "y\n", true, false, true},
		{"upper case yes", " Y \n", true, false, true},
		{"default no", "\n", true, false, false},
		{"word yes is not y", "yes\n", true, false, false},
		{"closed input", "", true, false, false},
		{"non-terminal declines", "y\n", false, false, false},
		{"assume yes", "", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestConsole(tt.input, tt.interactive, tt.yes)
			assert.Equal(t, tt.want, c.Confirm("Delete author?"))
			if tt.interactive && !tt.yes {
				assert.Equal(t, "Delete author? [y/N]: ", out.String())
			}
		})
	}
}

func TestConsoleReadLine(t *testing.T) {
	c, out := newTestConsole("Pride and\r\nlast", true, false)

	line, err := c.ReadLine("Title")
	require.NoError(t, err)
	assert.Equal(t, "Pride and", line)
	assert.Equal(t, "Title: ", out.String())

	line, err = c.ReadLine("Title")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = c.ReadLine("Title")
	assert.ErrorIs(t, err, errNoInput)

	c, _ = newTestConsole("ignored\n", false, false)
	_, err = c.ReadLine("Title")
	assert.ErrorIs(t, err, errNoInput)
}

func TestSetupLoggerLevels(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"WARN":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"unknown": zerolog.InfoLevel,
	}

	for level, want := range tests {
		setupLogger(config.LoggingConfig{Level: level, Format: "json"})
		assert.Equal(t, want, zerolog.GlobalLevel(), level)
	}
}
