package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every module read by one driver run. Adding a path again
// creates a new FileID; earlier ids stay valid.
type FileSet struct {
	files   []File
	latest  map[string]FileID // normalized path -> newest id
	baseDir string            // "" means the working directory
}

func NewFileSet() *FileSet { return NewFileSetWithBase("") }

// NewFileSetWithBase sets the directory relative paths are printed against.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{latest: make(map[string]FileID), baseDir: baseDir}
}

func (fileSet *FileSet) SetBaseDir(dir string) { fileSet.baseDir = dir }

// BaseDir returns the configured base, falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir != "" {
		return fileSet.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add registers already normalized content under path.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	id, key := FileID(n), normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    key,
		Content: content,
		LineIdx: lineIndex(content),
		Flags:   flags,
	})
	fileSet.latest[key] = id
	return id
}

// Load reads path, strips a UTF-8 BOM, folds CRLF to LF and adds the result.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := normalizeContent(raw)
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual registers in-memory content such as a REPL line or a test input.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get panics on an id this set never issued.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		panic(fmt.Sprintf("source: unknown file id %d", id))
	}
	return &fileSet.files[id]
}

// GetLatest returns the newest id registered for path.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.latest[normalizePath(path)]
	return id, ok
}

func (fileSet *FileSet) Len() int { return len(fileSet.files) }

// GetLine returns line n (1-based) without its newline, or "" past the end.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int64(n) > int64(len(f.LineIdx))+1 {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n-1) < len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the module path for diagnostics. mode is one of
// absolute, relative, basename or auto; anything else prints Path as stored.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		// длинные абсолютные пути обрезаем до имени
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
