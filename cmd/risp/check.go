package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"risp/internal/diag"
	"risp/internal/diagfmt"
	"risp/internal/driver"
	"risp/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.risp|directory]",
	Short: "Parse risp sources and report diagnostics",
	Long: `Check parses every source under the target in parallel and reports
diagnostics only. Results for unchanged files are served from the parse cache.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("no-cache", false, "bypass the parse cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseTristate("ui", uiFlag)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	target, err := st.resolveTarget(args)
	if err != nil {
		return err
	}

	var (
		files []string
		base  string
	)
	if isDir(target) {
		base = target
		if files, err = driver.ListSourceFiles(target); err != nil {
			return err
		}
	} else {
		base = filepath.Dir(target)
		files = []string{target}
	}
	if len(files) == 0 {
		if !st.quiet {
			fmt.Fprintf(os.Stderr, "no source files under %s\n", target)
		}
		return nil
	}

	opts := driver.DirOptions{Options: st.driverOptions(), Jobs: jobs}
	if !noCache && (st.manifest == nil || st.manifest.Config.Cache.Enabled) {
		disk, err := driver.OpenDiskCache("risp")
		if err != nil {
			// без кэша работаем дальше
			fmt.Fprintf(os.Stderr, "warning: parse cache disabled: %v\n", err)
		}
		opts.Cache = driver.NewModuleCache(len(files), disk)
	}

	fileSet := source.NewFileSetWithBase(base)
	timer := newCommandTimer(cmd)
	phase := timer.Begin("check")
	var results []driver.FileResult
	if mode.resolve(os.Stdout) && format != "json" {
		results, err = runCheckWithUI(cmd.Context(), "risp check "+target, fileSet, files, opts)
	} else {
		results, err = driver.ParseFiles(cmd.Context(), fileSet, files, opts)
	}
	timer.End(phase, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	all := diag.NewBag(st.maxDiagnostics)
	cached := 0
	for i := range results {
		all.Merge(results[i].Bag)
		if results[i].Cached {
			cached++
		}
	}
	all.Sort()

	switch format {
	case "json":
		if err := diagfmt.JSON(os.Stdout, all, fileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         st.pathMode,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
	case "short":
		if out := diag.FormatShort(all.Items(), fileSet, st.timings); out != "" {
			fmt.Fprintln(os.Stdout, out)
		}
	default:
		diagfmt.Pretty(os.Stdout, all, fileSet, st.prettyOpts())
	}

	if !st.quiet && format != "json" {
		errs := 0
		for _, d := range all.Items() {
			if d.Severity == diag.SevError {
				errs++
			}
		}
		fmt.Fprintf(os.Stderr, "checked %d file(s), %d cached, %d error(s)\n", len(results), cached, errs)
	}
	printTimings(st, timer)
	if all.HasErrors() {
		return errReported
	}
	return nil
}
