package diagfmt

import "risp/internal/source"

// PathMode selects how module paths are printed.
type PathMode uint8

const (
	PathModeAuto     PathMode = iota // short paths as given, long absolute ones cut to the name
	PathModeAbsolute
	PathModeRelative // against the FileSet base directory
	PathModeBasename
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return pathModeNames[PathModeAuto]
}

// ParsePathMode reads a --path-mode value; anything unknown is auto.
func ParsePathMode(s string) PathMode {
	for i, name := range pathModeNames {
		if name == s {
			return PathMode(i)
		}
	}
	return PathModeAuto
}

type PrettyOpts struct {
	Color     bool
	Context   int8 // lines shown around the primary one
	PathMode  PathMode
	ShowNotes bool
}

type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	Max              int // caps the output only; the bag keeps everything
	IncludeNotes     bool
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	base := ""
	if mode == PathModeRelative || mode == PathModeAuto {
		base = fs.BaseDir()
	}
	return f.FormatPath(mode.String(), base)
}
