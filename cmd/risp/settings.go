package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"risp/internal/diagfmt"
	"risp/internal/driver"
	"risp/internal/project"
)

// settings collects the global flags with risp.toml defaults applied.
type settings struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	pathMode       diagfmt.PathMode
	manifest       *project.Manifest
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Root().PersistentFlags()
	var s settings

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return s, fmt.Errorf("failed to get color flag: %w", err)
	}
	color, err := parseTristate("color", colorFlag)
	if err != nil {
		return s, err
	}
	s.color = color.resolve(os.Stderr)
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return s, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	s.pathMode = diagfmt.ParsePathMode(pathMode)

	wd, err := os.Getwd()
	if err != nil {
		return s, err
	}
	manifest, ok, err := project.LoadManifest(wd)
	if err != nil {
		return s, err
	}
	if ok {
		s.manifest = manifest
		// флаг важнее манифеста
		if !flags.Changed("max-diagnostics") {
			s.maxDiagnostics = manifest.Config.Parse.MaxDiagnostics
		}
	}
	return s, nil
}

// driverOptions builds per-file driver options for cmd.
func (s settings) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Timings:        s.timings,
	}
}

// resolveTarget picks the file or directory to work on: the argument when
// given, otherwise [build].main of the enclosing project.
func (s settings) resolveTarget(args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Clean(args[0]), nil
	}
	if s.manifest == nil {
		return "", fmt.Errorf("no input given and no %s found", project.ManifestName)
	}
	return s.manifest.MainPath()
}

func (s settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   2,
		PathMode:  s.pathMode,
		ShowNotes: s.timings,
	}
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
