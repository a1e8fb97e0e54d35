// ==============================================================================================
// FILE: cmd/mal/cmd/root.go
// ==============================================================================================
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mal [file] [args...]",
	Short: "MAL (Make-A-Lisp) interpreter",
	Long: `mal is a Go implementation of MAL, a small Lisp dialect in the Clojure
family with integer arithmetic, lexical scoping, first-class functions with
closures, mutable reference cells, and a standard library of sequence, I/O,
and comparison primitives.

With no arguments it starts an interactive prompt. With a file argument it
loads and runs that file, making any remaining arguments available to the
program as the list bound to *ARGV*.`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	RunE:          runMain,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))
	rootCmd.AddCommand(versionCmd)
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
