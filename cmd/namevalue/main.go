package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sean-/sysexits"

	"github.com/authzed/namevalue/pkg/cmd"
	"github.com/authzed/namevalue/pkg/nverrors"
)

const programName = "namevalue"

func main() {
	rootCmd := cmd.NewRootCommand(programName)
	rootCmd.PersistentPreRunE = cmd.DefaultPreRunE(programName)
	cmd.RegisterRootFlags(rootCmd)
	cmd.RegisterCommands(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, fs.ErrNotExist) {
		return sysexits.NoInput
	}

	if ierr, ok := nverrors.AsInvalidArgumentErr(err); ok {
		if ierr.Reason() == nverrors.ReasonMalformed {
			return sysexits.DataErr
		}
		return sysexits.Usage
	}
	return 1
}
