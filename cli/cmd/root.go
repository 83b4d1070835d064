package cmd

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "fhicl",
		Short:        "fhicl",
		SilenceUsage: true,
		Long:         `CLI tool for parsing FHiCL configuration documents into fully resolved parameter trees.`,
	}

	includeDirs []string
	format      string
	verbose     bool
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringSliceVarP(&includeDirs, "include-dir", "I", nil, "directories searched for #include files, in order; defaults to the working directory")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text", "output format: text, yaml or repr")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log the resolved prolog scope and dropped overrides to stderr")
	return rootCmd.Execute()
}
