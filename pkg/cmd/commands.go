package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	log "github.com/authzed/namevalue/internal/logging"
	"github.com/authzed/namevalue/pkg/cmd/termination"
	"github.com/authzed/namevalue/pkg/namevalue"
)

// NewParseCommand returns the command printing every entry of its input.
func NewParseCommand(config *InputConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "parse name-value pairs and print every entry",
		Args:  cobra.RangeArgs(0, 1),
		RunE: termination.PublishError(func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cmd, pathArg(args, 0))
			if err != nil {
				return err
			}

			printer, err := config.Printer(cmd)
			if err != nil {
				return err
			}
			return printer.PrintCollection(c)
		}),
	}
	RegisterInputFlags(cmd, config)
	return cmd
}

// NewKeysCommand returns the command printing the keys of its input.
func NewKeysCommand(config *InputConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys [file]",
		Short: "print the keys of name-value pairs in order",
		Args:  cobra.RangeArgs(0, 1),
		RunE: termination.PublishError(func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cmd, pathArg(args, 0))
			if err != nil {
				return err
			}

			printer, err := config.Printer(cmd)
			if err != nil {
				return err
			}
			return printer.PrintKeys(c.Keys())
		}),
	}
	RegisterInputFlags(cmd, config)
	return cmd
}

// NewGetCommand returns the command printing the values of one key.
func NewGetCommand(config *InputConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key> [file]",
		Short: "print the values bound to a key",
		Args:  cobra.RangeArgs(1, 2),
		RunE: termination.PublishError(func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cmd, pathArg(args, 1))
			if err != nil {
				return err
			}

			printer, err := config.Printer(cmd)
			if err != nil {
				return err
			}

			values, ok := c.Get(namevalue.Name(args[0]))
			if !ok {
				log.Ctx(cmd.Context()).Debug().Str("key", args[0]).Object("collection", c).Msg("key not found")
				return fmt.Errorf("key %q not found", args[0])
			}
			return printer.PrintValues(values)
		}),
	}
	RegisterInputFlags(cmd, config)
	return cmd
}
