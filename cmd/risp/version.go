package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"risp/internal/version"
)

// buildInfo is the JSON shape of `risp version --format json`. Commit and
// date appear only when asked for.
type buildInfo struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show risp build fingerprints",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	f := versionCmd.Flags()
	f.Bool("hash", false, "include git commit hash")
	f.Bool("date", false, "include build timestamp")
	f.Bool("full", false, "show every recorded bit of build metadata")
	f.String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	full, _ := f.GetBool("full")
	withHash, _ := f.GetBool("hash")
	withDate, _ := f.GetBool("date")
	format, _ := f.GetString("format")

	info := currentBuild(withHash || full, withDate || full)
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		return writeBuildJSON(out, info)
	case "pretty":
		fmt.Fprintf(out, "risp %s\n", version.Colored())
		if info.GitCommit != "" {
			fmt.Fprintf(out, "commit: %s\n", info.GitCommit)
		}
		if info.BuildDate != "" {
			fmt.Fprintf(out, "built:  %s\n", info.BuildDate)
		}
		return nil
	}
	return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
}

func currentBuild(withHash, withDate bool) buildInfo {
	info := buildInfo{Tool: "risp", Version: orUnknown(version.Version, "dev")}
	if withHash {
		info.GitCommit = orUnknown(version.GitCommit, "unknown")
	}
	if withDate {
		info.BuildDate = orUnknown(version.BuildDate, "unknown")
	}
	return info
}

func writeBuildJSON(w io.Writer, info buildInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

func orUnknown(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}
