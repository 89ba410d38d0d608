package source

import (
	"bytes"
	"fmt"
	"path/filepath"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalizeContent drops a leading BOM and turns every CRLF into LF. A lone
// CR is kept: the scanner treats it as whitespace.
func normalizeContent(raw []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(raw, utf8BOM); ok {
		raw, flags = rest, flags|FileHadBOM
	}
	if bytes.Contains(raw, []byte("\r\n")) {
		raw, flags = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n")), flags|FileNormalizedCRLF
	}
	return raw, flags
}

// lineIndex records the byte offset of every '\n'.
func lineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for off := 0; ; off++ {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		pos, err := safecast.Conv[uint32](off)
		if err != nil {
			panic(fmt.Errorf("source: file too large: %w", err))
		}
		idx = append(idx, pos)
	}
}

// normalizePath gives one spelling per path on every platform.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
