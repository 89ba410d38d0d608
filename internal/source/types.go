package source

type (
	// FileID identifies a compilation unit within a FileSet.
	FileID uint32
	// FileFlags records how the content was obtained.
	FileFlags uint8
)

const (
	// FileVirtual marks in-memory sources (tests, stdin, REPL input).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is the module record every token position refers back to.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of '\n'
	Flags   FileFlags
}

// Name is the module's display name.
func (f *File) Name() string {
	return f.Path
}
