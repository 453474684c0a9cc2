package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/authzed/namevalue/pkg/namevalue"
	"github.com/authzed/namevalue/pkg/nverrors"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	rootCmd := NewRootCommand("namevalue")
	RegisterRootFlags(rootCmd)
	RegisterCommands(rootCmd)

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

const sampleLines = "b=2\na=1\nempty\nB=3\n"

func TestParseCommandText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stdin    string
		args     []string
		expected string
	}{
		{
			name:     "lines",
			stdin:    sampleLines,
			args:     []string{"parse"},
			expected: "b: 2\nb: 3\na: 1\nempty:\n",
		},
		{
			name:     "case sensitive",
			stdin:    sampleLines,
			args:     []string{"parse", "--case-sensitive"},
			expected: "b: 2\na: 1\nempty:\nB: 3\n",
		},
		{
			name:     "query",
			stdin:    "q=a+b&page=2&q=c\n",
			args:     []string{"parse", "--format", "query"},
			expected: "q: a b\nq: c\npage: 2\n",
		},
		{
			name:     "header",
			stdin:    "Host: example.com\nAccept: text/html\n  ;q=0.9\n\nbody",
			args:     []string{"parse", "--format", "header"},
			expected: "Host: example.com\nAccept: text/html ;q=0.9\n",
		},
		{
			name:     "empty input",
			stdin:    "",
			args:     []string{"parse"},
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, tc.stdin, tc.args...)
			require.NoError(t, err)
			require.Equal(t, tc.expected, out)
		})
	}
}

func TestParseCommandJSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, sampleLines, "parse", "--output", "json")
	require.NoError(t, err)

	var entries []jsonEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		require.NotNil(t, entry.Key)
		keys = append(keys, *entry.Key)
	}
	require.Equal(t, []string{"b", "a", "empty"}, keys)
	require.Equal(t, []string{"2", "3"}, entries[0].Values)
	require.Equal(t, []string{}, entries[2].Values)
}

func TestParseCommandYAML(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "z=1\na=true\nz=2\nempty\n", "parse", "--output", "yaml")
	require.NoError(t, err)

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Content, 1)

	mapping := doc.Content[0]
	require.Equal(t, yaml.MappingNode, mapping.Kind)
	require.Len(t, mapping.Content, 6)

	require.Equal(t, "z", mapping.Content[0].Value)
	require.Equal(t, "a", mapping.Content[2].Value)
	require.Equal(t, "empty", mapping.Content[4].Value)

	// Values stay strings even when they look like other scalars.
	var decoded map[string][]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Equal(t, map[string][]string{
		"z":     {"1", "2"},
		"a":     {"true"},
		"empty": {},
	}, decoded)
}

func TestKeysCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, sampleLines, "keys")
	require.NoError(t, err)
	require.Equal(t, "b\na\nempty\n", out)

	out, err = execute(t, sampleLines, "keys", "--output", "json")
	require.NoError(t, err)

	var keys []string
	require.NoError(t, json.Unmarshal([]byte(out), &keys))
	require.Equal(t, []string{"b", "a", "empty"}, keys)

	out, err = execute(t, sampleLines, "keys", "--output", "yaml")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &keys))
	require.Equal(t, []string{"b", "a", "empty"}, keys)
}

func TestGetCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, sampleLines, "get", "B")
	require.NoError(t, err)
	require.Equal(t, "2\n3\n", out)

	out, err = execute(t, sampleLines, "get", "B", "--case-sensitive")
	require.NoError(t, err)
	require.Equal(t, "3\n", out)

	out, err = execute(t, sampleLines, "get", "empty")
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = execute(t, sampleLines, "get", "b", "--output", "json")
	require.NoError(t, err)

	var values []string
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	require.Equal(t, []string{"2", "3"}, values)

	_, err = execute(t, sampleLines, "get", "missing")
	require.ErrorContains(t, err, `key "missing" not found`)

	_, err = execute(t, sampleLines, "get")
	require.Error(t, err)
}

func TestCommandsReadFiles(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("x=1\ny=2\n"), 0o600))

	out, err := execute(t, "ignored=1\n", "keys", path)
	require.NoError(t, err)
	require.Equal(t, "x\ny\n", out)

	out, err = execute(t, "", "get", "y", path)
	require.NoError(t, err)
	require.Equal(t, "2\n", out)

	out, err = execute(t, "stdin=1\n", "keys", "-")
	require.NoError(t, err)
	require.Equal(t, "stdin\n", out)

	_, err = execute(t, "", "parse", filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorContains(t, err, "unable to open input")
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stdin  string
		args   []string
		reason nverrors.InvalidArgumentReason
	}{
		{"unknown format", "", []string{"parse", "--format", "toml"}, nverrors.ReasonInvalidValue},
		{"unknown output", "a=1", []string{"parse", "--output", "xml"}, nverrors.ReasonInvalidValue},
		{"malformed query", "a=%zz", []string{"parse", "--format", "query"}, nverrors.ReasonMalformed},
		{"malformed header", "no colon here\n", []string{"keys", "--format", "header"}, nverrors.ReasonMalformed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, tc.stdin, tc.args...)
			ierr, ok := nverrors.AsInvalidArgumentErr(err)
			require.True(t, ok, "expected an invalid argument error, got %v", err)
			require.Equal(t, tc.reason, ierr.Reason())
		})
	}
}

func TestMaxInputSize(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "a=1\n", "parse", "--max-input-size", "4B")
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", out)

	_, err = execute(t, "a=1\nb=2\n", "parse", "--max-input-size", "4B")
	require.ErrorContains(t, err, "input exceeds the maximum size of 4 B")
	ierr, ok := nverrors.AsInvalidArgumentErr(err)
	require.True(t, ok)
	require.Equal(t, nverrors.ReasonInvalidValue, ierr.Reason())

	_, err = execute(t, "a=1&b=2", "parse", "--format", "query", "--max-input-size", "3B")
	require.ErrorContains(t, err, "input exceeds")

	long := strings.Repeat("v", 70*1024)
	out, err = execute(t, "k="+long+"\n", "get", "k")
	require.NoError(t, err)
	require.Equal(t, long+"\n", out)

	_, err = execute(t, "a=1", "parse", "--max-input-size", "lots")
	require.ErrorContains(t, err, "error parsing maximum input size `lots`")
}

func TestPrinterNullKey(t *testing.T) {
	t.Parallel()

	c := namevalue.New[string]()
	require.NoError(t, c.Add(namevalue.NullKey, "anonymous"))
	require.NoError(t, c.Add(namevalue.Name("null"), "named"))

	var out bytes.Buffer
	require.NoError(t, NewPrinter(&out, OutputText).PrintCollection(c))
	require.Equal(t, "<null>: anonymous\nnull: named\n", out.String())

	out.Reset()
	require.NoError(t, NewPrinter(&out, OutputJSON).PrintCollection(c))
	var entries []jsonEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Nil(t, entries[0].Key)
	require.Equal(t, "null", *entries[1].Key)

	out.Reset()
	require.NoError(t, NewPrinter(&out, OutputYAML).PrintCollection(c))
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	mapping := doc.Content[0]
	require.Equal(t, "!!null", mapping.Content[0].Tag)
	require.Equal(t, "!!str", mapping.Content[2].Tag)
	require.Equal(t, "null", mapping.Content[2].Value)
}

func TestManCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "man")
	require.NoError(t, err)
	require.Contains(t, out, ".TH")
	require.Contains(t, strings.ToUpper(out), "NAMEVALUE")
}

func TestParseOutput(t *testing.T) {
	t.Parallel()

	for _, name := range OutputNames() {
		output, err := ParseOutput(name)
		require.NoError(t, err)
		require.Equal(t, name, output.String())
	}

	output, err := ParseOutput("JSON")
	require.NoError(t, err)
	require.Equal(t, OutputJSON, output)
	require.Equal(t, "Output(9)", Output(9).String())
}
