// Package nvparse reads and writes name-value collections in common textual
// formats without losing the order of keys or values.
package nvparse

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"net/url"
	"strings"

	"github.com/jzelinskie/stringz"

	log "github.com/authzed/namevalue/internal/logging"
	"github.com/authzed/namevalue/pkg/namevalue"
	"github.com/authzed/namevalue/pkg/nverrors"
)

// Format is a textual encoding of a collection.
type Format int

const (
	// FormatLines is one `key=value` pair per line. Blank lines and lines
	// starting with `#` are ignored.
	FormatLines Format = iota

	// FormatQuery is a URL query string such as `a=1&b=2`.
	FormatQuery

	// FormatHeader is a block of MIME-style `Name: value` header lines.
	FormatHeader
)

var formatNames = []string{"lines", "query", "header"}

func (f Format) String() string {
	if int(f) < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// FormatNames returns the names accepted by ParseFormat.
func FormatNames() []string {
	return append([]string(nil), formatNames...)
}

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	index := stringz.SliceIndex(formatNames, strings.ToLower(strings.TrimSpace(name)))
	if index < 0 {
		return 0, nverrors.NewInvalidArgumentErr("format", nverrors.ReasonInvalidValue,
			"unknown format %q, expected one of %s", name, strings.Join(formatNames, ", "))
	}
	return Format(index), nil
}

// Parse reads the whole of r in the given format.
func Parse(format Format, r io.Reader, opts ...namevalue.Option) (*namevalue.Collection[string], error) {
	var (
		c   *namevalue.Collection[string]
		err error
	)

	switch format {
	case FormatLines:
		c, err = ParseLines(r, opts...)

	case FormatHeader:
		c, err = ParseHeader(r, opts...)

	case FormatQuery:
		var contents []byte
		contents, err = io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read query: %w", err)
		}
		c, err = ParseQuery(strings.TrimSpace(string(contents)), opts...)

	default:
		return nil, nverrors.NewInvalidArgumentErr("format", nverrors.ReasonInvalidValue, "unsupported format %s", format)
	}

	if err != nil {
		return nil, err
	}

	log.Debug().Stringer("format", format).Object("collection", c).Msg("parsed input")
	return c, nil
}

// ParseQuery parses a URL query string. Unlike url.ParseQuery, keys and
// values keep the order in which they appear.
//
// A component without `=` adds its key with no values; `k=` adds an empty
// string. `+` decodes to a space and `;` is not a separator.
func ParseQuery(query string, opts ...namevalue.Option) (*namevalue.Collection[string], error) {
	return namevalue.Build(func(c *namevalue.Collection[string]) error {
		for component := range strings.SplitSeq(query, "&") {
			if component == "" {
				continue
			}

			rawName, rawValue, hasValue := strings.Cut(component, "=")
			name, err := url.QueryUnescape(rawName)
			if err != nil {
				return malformedQueryErr(component, err)
			}

			if !hasValue {
				if err := c.AddKey(namevalue.Name(name)); err != nil {
					return err
				}
				continue
			}

			value, err := url.QueryUnescape(rawValue)
			if err != nil {
				return malformedQueryErr(component, err)
			}
			if err := c.Add(namevalue.Name(name), value); err != nil {
				return err
			}
		}
		return nil
	}, opts...)
}

func malformedQueryErr(component string, err error) error {
	return nverrors.NewInvalidArgumentErr("query", nverrors.ReasonMalformed, "component %q: %s", component, err)
}

// EncodeQuery is the inverse of ParseQuery: keys in collection order, each
// followed by its values in order. Keys without values are written bare. The
// null key cannot be represented and is skipped.
func EncodeQuery(c *namevalue.Collection[string]) string {
	var sb strings.Builder
	write := func(component string) {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(component)
	}

	for i := range c.Count() {
		key, _ := c.KeyAt(i)
		if key.IsNull() {
			continue
		}

		name := url.QueryEscape(key.Name())
		values, _ := c.GetAt(i)
		if len(values) == 0 {
			write(name)
			continue
		}
		for _, value := range values {
			write(name + "=" + url.QueryEscape(value))
		}
	}
	return sb.String()
}

// ParseHeader parses `Name: value` lines up to the first blank line or the
// end of input. Lines starting with a space or a tab continue the previous
// value. Names are kept as written; the collection comparer decides which
// spellings collide.
func ParseHeader(r io.Reader, opts ...namevalue.Option) (*namevalue.Collection[string], error) {
	return namevalue.Build(func(c *namevalue.Collection[string]) error {
		var (
			name    string
			value   strings.Builder
			pending bool
		)

		flush := func() error {
			if !pending {
				return nil
			}
			pending = false
			return c.Add(namevalue.Name(name), value.String())
		}

		scanner := newLineScanner(r)
		line := 0
		for scanner.Scan() {
			line++
			text := scanner.Text()
			if text == "" {
				break
			}

			if text[0] == ' ' || text[0] == '\t' {
				if !pending {
					return malformedLineErr("header", line, "continuation line without a preceding field")
				}
				if continued := strings.TrimSpace(text); continued != "" {
					if value.Len() > 0 {
						value.WriteByte(' ')
					}
					value.WriteString(continued)
				}
				continue
			}

			if err := flush(); err != nil {
				return err
			}

			rawName, rawValue, ok := strings.Cut(text, ":")
			if !ok {
				return malformedLineErr("header", line, "missing `:` separator")
			}
			name = strings.TrimSpace(rawName)
			if name == "" {
				return malformedLineErr("header", line, "empty field name")
			}

			value.Reset()
			value.WriteString(strings.TrimSpace(rawValue))
			pending = true
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read header: %w", err)
		}
		return flush()
	}, opts...)
}

// ParseLines parses one `key=value` pair per line. Surrounding whitespace is
// trimmed, a value wrapped in double quotes loses the quotes, and a bare `key`
// adds the key with no values.
func ParseLines(r io.Reader, opts ...namevalue.Option) (*namevalue.Collection[string], error) {
	return namevalue.Build(func(c *namevalue.Collection[string]) error {
		scanner := newLineScanner(r)
		line := 0
		for scanner.Scan() {
			line++
			text := strings.TrimSpace(scanner.Text())
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}

			rawName, rawValue, hasValue := strings.Cut(text, "=")
			name := strings.TrimSpace(rawName)
			if name == "" {
				return malformedLineErr("lines", line, "empty key")
			}

			if !hasValue {
				if err := c.AddKey(namevalue.Name(name)); err != nil {
					return err
				}
				continue
			}

			value := strings.TrimSpace(rawValue)
			if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
				value = stringz.TrimSurrounding(value, `"`)
			}
			if err := c.Add(namevalue.Name(name), value); err != nil {
				return err
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read lines: %w", err)
		}
		return nil
	}, opts...)
}

// newLineScanner returns a line scanner without a line length limit. The
// caller bounds the total input instead.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), math.MaxInt)
	return scanner
}

func malformedLineErr(argument string, line int, reason string) error {
	return nverrors.NewInvalidArgumentErr(argument, nverrors.ReasonMalformed, "line %d: %s", line, reason)
}
