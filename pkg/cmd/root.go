package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/go-logr/zerologr"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	log "github.com/authzed/namevalue/internal/logging"
	"github.com/authzed/namevalue/pkg/cmd/termination"
)

func RegisterRootFlags(cmd *cobra.Command) {
	cobrazerolog.New().RegisterFlags(cmd.PersistentFlags())
	termination.RegisterFlags(cmd.PersistentFlags())
}

// DefaultPreRunE sets up viper and zerolog flag handling for a command.
func DefaultPreRunE(programName string) cobrautil.CobraRunFunc {
	return cobrautil.CommandStack(
		cobrautil.SyncViperDotEnvPreRunE(programName, programName+".env", zerologr.New(&log.Logger)),
		cobrazerolog.New(
			cobrazerolog.WithTarget(func(logger zerolog.Logger) {
				log.SetGlobalLogger(logger)
			}),
		).RunE(),
	)
}

// Example creates an example usage string with the provided program name.
func Example(programName string) string {
	return fmt.Sprintf(`	%[1]s:
		printf 'a=1\nb=2\na=3\n' | %[3]s parse

	%[2]s:
		%[3]s get accept --format header --output json request.txt
`,
		color.YellowString("Entries of a key=value file"),
		color.GreenString("Values of one header field"),
		programName,
	)
}

func NewRootCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:           programName,
		Short:         "Inspect ordered, multi-valued name-value data",
		Long:          "Parses query strings, MIME headers, and key=value files into ordered name-value collections without losing key or value order",
		Example:       Example(programName),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
}

// RegisterCommands adds every subcommand to the root command.
func RegisterCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(
		NewParseCommand(&InputConfig{}),
		NewKeysCommand(&InputConfig{}),
		NewGetCommand(&InputConfig{}),
		NewManCommand(),
	)
}
