// ==============================================================================================
// FILE: cmd/mal/cmd/run.go
// ==============================================================================================
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/amoghasbhardwaj/mal-go/core"
	"github.com/amoghasbhardwaj/mal-go/eval"
	"github.com/amoghasbhardwaj/mal-go/repl"
	"github.com/amoghasbhardwaj/mal-go/types"
)

// runMain is the root command's entry point: no arguments starts the
// interactive prompt; a first argument is a file to load, with any
// remaining arguments bound into *ARGV* before that file runs.
func runMain(_ *cobra.Command, args []string) error {
	environment := core.NewEnv(os.Stdout)

	argv := make([]types.Expression, 0, len(args))
	if len(args) > 1 {
		for _, a := range args[1:] {
			argv = append(argv, types.Str{Value: a})
		}
	}
	environment.Set("*ARGV*", types.List{Items: argv})

	if err := core.Bootstrap(environment); err != nil {
		return err
	}

	if len(args) == 0 {
		return repl.Start(os.Stdin, os.Stdout, environment)
	}

	loadForm := types.List{Items: []types.Expression{
		types.Symbol{Value: "load-file"},
		types.Str{Value: args[0]},
	}}
	if _, err := eval.Eval(loadForm, environment); err != nil {
		exitWithError("%s", err)
	}
	return nil
}
