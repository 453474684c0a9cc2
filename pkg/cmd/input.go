package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	log "github.com/authzed/namevalue/internal/logging"
	"github.com/authzed/namevalue/pkg/namevalue"
	"github.com/authzed/namevalue/pkg/nverrors"
	"github.com/authzed/namevalue/pkg/nvparse"
	"github.com/authzed/namevalue/pkg/orderedstore"
)

// InputConfig is the configuration shared by every command that reads a
// collection.
type InputConfig struct {
	// Format is the name of the input format, as accepted by
	// nvparse.ParseFormat.
	Format string

	// Output is the name of the output encoding, as accepted by ParseOutput.
	Output string

	CaseSensitive bool

	// MaxInputSize bounds the number of bytes read, in a form accepted by
	// humanize.ParseBytes (e.g. "16MiB").
	MaxInputSize string
}

const defaultMaxInputSize = "16MiB"

// RegisterInputFlags registers the input and output flags of a command.
func RegisterInputFlags(cmd *cobra.Command, config *InputConfig) {
	cmd.Flags().StringVar(&config.Format, "format", nvparse.FormatLines.String(),
		fmt.Sprintf("format of the input (%s)", strings.Join(nvparse.FormatNames(), ", ")))
	cmd.Flags().StringVar(&config.Output, "output", OutputText.String(),
		fmt.Sprintf("encoding of the output (%s)", strings.Join(OutputNames(), ", ")))
	cmd.Flags().BoolVar(&config.CaseSensitive, "case-sensitive", false, "compare keys by their exact spelling")
	cmd.Flags().StringVar(&config.MaxInputSize, "max-input-size", defaultMaxInputSize, "maximum number of bytes of input to read")
}

// Options returns the collection options selected by the flags.
func (c *InputConfig) Options() []namevalue.Option {
	if c.CaseSensitive {
		return []namevalue.Option{namevalue.WithComparer(orderedstore.Ordinal())}
	}
	return nil
}

// Load parses the file at path, or the command input when path is empty or
// `-`. The collection is read-only.
func (c *InputConfig) Load(cmd *cobra.Command, path string) (*namevalue.Collection[string], error) {
	format, err := nvparse.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}

	limit, err := humanize.ParseBytes(c.MaxInputSize)
	if err != nil {
		return nil, nverrors.NewInvalidArgumentErr("max-input-size", nverrors.ReasonInvalidValue,
			"error parsing maximum input size `%s`: %s", c.MaxInputSize, err)
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("unable to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	log.Ctx(cmd.Context()).Debug().
		Str("path", path).
		Stringer("format", format).
		Bool("caseSensitive", c.CaseSensitive).
		Str("maxInputSize", humanize.IBytes(limit)).
		Msg("reading input")

	opts := append(c.Options(), namevalue.WithReadOnly(true))
	return nvparse.Parse(format, &limitedReader{r: r, remaining: limit, limit: limit}, opts...)
}

// limitedReader fails once more than limit bytes are available, where
// io.LimitReader would silently truncate.
type limitedReader struct {
	r         io.Reader
	remaining uint64
	limit     uint64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if l.remaining == 0 {
		var probe [1]byte
		n, err := l.r.Read(probe[:])
		if n > 0 {
			return 0, nverrors.NewInvalidArgumentErr("input", nverrors.ReasonInvalidValue,
				"input exceeds the maximum size of %s", humanize.IBytes(l.limit))
		}
		return 0, err
	}

	if uint64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= uint64(n)
	return n, err
}

// Printer returns a printer writing the configured output encoding to the
// command output.
func (c *InputConfig) Printer(cmd *cobra.Command) (*Printer, error) {
	output, err := ParseOutput(c.Output)
	if err != nil {
		return nil, err
	}
	return NewPrinter(cmd.OutOrStdout(), output), nil
}

func pathArg(args []string, index int) string {
	if len(args) > index {
		return args[index]
	}
	return ""
}
