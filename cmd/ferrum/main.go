package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "ferrum",
		Short: "Ferrum - indentation-based UI markup",
		Long: `Ferrum compiles .frr markup files into HTML and view code. It ships a
formatter, a production build command, and a development server with live
reload.`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
	}

	rootCmd.AddCommand(newCreateCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newDevCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
