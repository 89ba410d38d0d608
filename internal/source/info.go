package source

import "fmt"

// Info is the position attached to every token. Line and Col are 1-based;
// Col counts runes.
type Info struct {
	File FileID
	Line uint32
	Col  uint32
}

// String renders line:col; use FileSet.Format to include the module path.
func (i Info) String() string {
	return fmt.Sprintf("%d:%d", i.Line, i.Col)
}

// Before orders positions within one module.
func (i Info) Before(other Info) bool {
	if i.Line != other.Line {
		return i.Line < other.Line
	}
	return i.Col < other.Col
}

// Format renders path:line:col.
func (fileSet *FileSet) Format(info Info) string {
	if int(info.File) >= len(fileSet.files) {
		return info.String()
	}
	return fmt.Sprintf("%s:%d:%d", fileSet.files[info.File].Path, info.Line, info.Col)
}
