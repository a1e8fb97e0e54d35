// ==============================================================================================
// FILE: cmd/mal/cmd/version.go
// ==============================================================================================
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mal version %s\n", Version)
		fmt.Printf("Git Commit: %s\n", GitCommit)
	},
}
