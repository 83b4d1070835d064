package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	fhicl "github.com/art-framework-suite/fhicl-go"
)

var (
	parseCmd = &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a FHiCL document and print the resolved parameter tree",
		Long:  "Parses the given file (or standard input) and prints the fully resolved parameter tree to stdout. Includes are resolved against the --include-dir search path.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.StandardLogger()
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}

			text, err := readInput(args)
			if err != nil {
				return err
			}

			doc, err := fhicl.ParseDocument(text, fhicl.DirLoader(includeDirs...), logger)
			if err != nil {
				logger.Error(err)
				return err
			}

			if verbose && !doc.Prolog.Empty() {
				logger.Debug("resolved prolog scope:\n" + doc.Prolog.String())
			}

			return writeTree(os.Stdout, doc)
		},
	}
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

func readInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		buf, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(buf), nil
	case 1:
		buf, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(buf), nil
	default:
		return "", errors.New("at most one input file may be given")
	}
}

func writeTree(w io.Writer, doc *fhicl.Document) error {
	switch format {
	case "text":
		return doc.Table.WriteIndented(w, "")
	case "yaml":
		return writeYaml(w, doc.Table)
	case "repr":
		_, err := fmt.Fprintln(w, repr.String(doc.Table, repr.Indent("  ")))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
