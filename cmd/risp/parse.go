package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"risp/internal/ast"
	"risp/internal/diagfmt"
	"risp/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [file.risp|directory]",
	Short: "Parse risp sources and print the syntax tree",
	Long: `Parse reads risp sources, resolves scopes and prints the resulting tree.
Without an argument the [build].main entry of risp.toml is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "dump", "output format (dump|tree|json|debug)")
	parseCmd.Flags().Int("jobs", 0, "parallel workers for directories (0 = GOMAXPROCS)")
}

func formatTree(w io.Writer, format string, tree *ast.Tree, root ast.NodeID) error {
	switch format {
	case "dump":
		return diagfmt.FormatASTPretty(w, tree, root)
	case "tree":
		return diagfmt.FormatASTTree(w, tree, root)
	case "json":
		return diagfmt.FormatASTJSON(w, tree, root)
	case "debug":
		return diagfmt.FormatASTDebug(w, tree, root)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "dump", "tree", "json", "debug":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	target, err := st.resolveTarget(args)
	if err != nil {
		return err
	}
	if isDir(target) {
		return parseDirectory(cmd, st, target, format, jobs)
	}

	timer := newCommandTimer(cmd)
	phase := timer.Begin("parse")
	result, err := driver.Parse(cmd.Context(), target, st.driverOptions())
	timer.End(phase, "")
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	defer func() { _ = result.Release() }()

	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, st.prettyOpts())
	}
	// дерево с ошибкой неполное, печатаем только диагностику
	if result.Err != nil {
		return errReported
	}

	out := timer.Begin("print")
	err = formatTree(os.Stdout, format, result.Tree, result.Root)
	timer.End(out, format)
	if err != nil {
		return err
	}
	printTimings(st, timer)
	return nil
}

func parseDirectory(cmd *cobra.Command, st settings, dir, format string, jobs int) error {
	timer := newCommandTimer(cmd)
	phase := timer.Begin("parse-dir")
	fileSet, results, err := driver.ParseDir(cmd.Context(), dir, driver.DirOptions{
		Options:   st.driverOptions(),
		Jobs:      jobs,
		KeepTrees: true,
	})
	timer.End(phase, fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	defer func() {
		for i := range results {
			_ = results[i].Release()
		}
	}()

	failed := false
	for i := range results {
		res := &results[i]
		if res.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, res.Bag, fileSet, st.prettyOpts())
		}
		if res.Bag.HasErrors() || res.Tree == nil {
			failed = true
			continue
		}
		if !st.quiet && format != "json" {
			fmt.Fprintf(os.Stdout, "== %s ==\n", res.Path)
		}
		if err := formatTree(os.Stdout, format, res.Tree, res.Root); err != nil {
			return err
		}
	}
	printTimings(st, timer)
	if failed {
		return errReported
	}
	return nil
}
