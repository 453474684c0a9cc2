package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jzelinskie/stringz"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/authzed/namevalue/pkg/genutil/slicez"
	"github.com/authzed/namevalue/pkg/namevalue"
	"github.com/authzed/namevalue/pkg/nverrors"
)

// Output is an encoding of command results.
type Output int

const (
	// OutputText prints `key: value` lines, with colorized keys on a
	// terminal.
	OutputText Output = iota

	// OutputJSON prints an ordered array of `{"key": ..., "values": [...]}`
	// objects.
	OutputJSON

	// OutputYAML prints an order-preserving mapping of keys to value lists.
	OutputYAML
)

var outputNames = []string{"text", "json", "yaml"}

func (o Output) String() string {
	if int(o) < 0 || int(o) >= len(outputNames) {
		return fmt.Sprintf("Output(%d)", int(o))
	}
	return outputNames[o]
}

// OutputNames returns the names accepted by ParseOutput.
func OutputNames() []string {
	return append([]string(nil), outputNames...)
}

// ParseOutput returns the output encoding with the given name.
func ParseOutput(name string) (Output, error) {
	index := stringz.SliceIndex(outputNames, strings.ToLower(strings.TrimSpace(name)))
	if index < 0 {
		return 0, nverrors.NewInvalidArgumentErr("output", nverrors.ReasonInvalidValue,
			"unknown output %q, expected one of %s", name, strings.Join(outputNames, ", "))
	}
	return Output(index), nil
}

const nullKeyText = "<null>"

// Printer writes collections, keys and values in one output encoding.
type Printer struct {
	w        io.Writer
	output   Output
	keyColor *color.Color
}

// NewPrinter creates a printer. Text output is only colorized when w is a
// terminal.
func NewPrinter(w io.Writer, output Output) *Printer {
	keyColor := color.New(color.FgCyan, color.Bold)
	if !isTerminal(w) {
		keyColor.DisableColor()
	}
	return &Printer{w: w, output: output, keyColor: keyColor}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type jsonEntry struct {
	Key    *string  `json:"key"`
	Values []string `json:"values"`
}

func jsonKey(key namevalue.Key) *string {
	if key.IsNull() {
		return nil
	}
	name := key.Name()
	return &name
}

func textKey(key namevalue.Key) string {
	if key.IsNull() {
		return nullKeyText
	}
	return key.Name()
}

func yamlKey(key namevalue.Key) *yaml.Node {
	if key.IsNull() {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	return yamlString(key.Name())
}

func yamlString(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func yamlStrings(values []string) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: slicez.Map(values, yamlString)}
}

// PrintCollection writes every key of c with its values, in order.
func (p *Printer) PrintCollection(c *namevalue.Collection[string]) error {
	switch p.output {
	case OutputJSON:
		entries := make([]jsonEntry, 0, c.Count())
		for i := range c.Count() {
			key, values, err := entryAt(c, i)
			if err != nil {
				return err
			}
			entries = append(entries, jsonEntry{Key: jsonKey(key), Values: values})
		}
		return p.writeJSON(entries)

	case OutputYAML:
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i := range c.Count() {
			key, values, err := entryAt(c, i)
			if err != nil {
				return err
			}
			mapping.Content = append(mapping.Content, yamlKey(key), yamlStrings(values))
		}
		return p.writeYAML(mapping)

	default:
		for i := range c.Count() {
			key, values, err := entryAt(c, i)
			if err != nil {
				return err
			}

			name := p.keyColor.Sprint(textKey(key))
			if len(values) == 0 {
				if _, err := fmt.Fprintf(p.w, "%s:\n", name); err != nil {
					return err
				}
				continue
			}
			for _, value := range values {
				if _, err := fmt.Fprintf(p.w, "%s: %s\n", name, value); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// PrintKeys writes the keys, in order.
func (p *Printer) PrintKeys(keys []namevalue.Key) error {
	switch p.output {
	case OutputJSON:
		return p.writeJSON(slicez.Map(keys, jsonKey))

	case OutputYAML:
		return p.writeYAML(&yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: slicez.Map(keys, yamlKey)})

	default:
		for _, key := range keys {
			if _, err := fmt.Fprintln(p.w, p.keyColor.Sprint(textKey(key))); err != nil {
				return err
			}
		}
		return nil
	}
}

// PrintValues writes the values, in order.
func (p *Printer) PrintValues(values []string) error {
	switch p.output {
	case OutputJSON:
		return p.writeJSON(values)

	case OutputYAML:
		return p.writeYAML(yamlStrings(values))

	default:
		for _, value := range values {
			if _, err := fmt.Fprintln(p.w, value); err != nil {
				return err
			}
		}
		return nil
	}
}

func (p *Printer) writeJSON(v any) error {
	encoder := json.NewEncoder(p.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (p *Printer) writeYAML(node *yaml.Node) error {
	encoder := yaml.NewEncoder(p.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{node}}); err != nil {
		return fmt.Errorf("unable to encode yaml: %w", err)
	}
	return encoder.Close()
}

func entryAt(c *namevalue.Collection[string], index int) (namevalue.Key, []string, error) {
	key, err := c.KeyAt(index)
	if err != nil {
		return namevalue.NullKey, nil, err
	}
	values, err := c.GetAt(index)
	if err != nil {
		return namevalue.NullKey, nil, err
	}
	return key, values, nil
}
