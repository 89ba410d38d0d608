package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"risp/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new risp project",
	Long: `Initialize a new risp project by creating a project manifest (risp.toml)
and an entry point (main.risp). If [path|name] is omitted, initializes the
current directory. A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit creates risp.toml and main.risp in the target directory. It
// refuses to touch a directory that already holds a manifest and keeps an
// existing main.risp.
func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) > 0 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "risp-project"
	}

	cfg := project.DefaultConfig(name)
	manifestPath := filepath.Join(target, project.ManifestName)
	if err := cfg.Encode(manifestPath); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("project already initialized: %s exists", manifestPath)
		}
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, filepath.FromSlash(cfg.Build.Main))
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMain(name)), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfg.Build.Main, err)
		}
		createdMain = true
	}

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized risp project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdMain {
		fmt.Fprintf(out, "  - %s\n", cfg.Build.Main)
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", cfg.Build.Main)
	}
	return nil
}

func defaultMain(name string) string {
	return fmt.Sprintf(`; %s entry point

(def greeting "Hello, risp!")

(defmacro unless [test & body]
  (if test nil body))

(def greet (fn [who] (str greeting " " who)))

(let [names ["world" "reader"]]
  (map #(greet %%) names))
`, name)
}
