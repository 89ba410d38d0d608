package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"risp/internal/diagfmt"
	"risp/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file.risp]",
	Short: "Tokenize a risp source file",
	Long:  `Tokenize breaks down a risp source file into its constituent tokens`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	filePath, err := st.resolveTarget(args)
	if err != nil {
		return err
	}
	if isDir(filePath) {
		return fmt.Errorf("%s is a directory; tokenize takes a single file", filePath)
	}

	result, err := driver.Tokenize(cmd.Context(), filePath, st.driverOptions())
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	defer func() { _ = result.Release() }()

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, st.prettyOpts())
	}

	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(os.Stdout, result.Tokens, result.Literals)
	default:
		err = diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.Literals, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}
