package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"risp/internal/source"
)

// Cursor — позиция сканера в файле: байтовое смещение плюс строка и колонка.
type Cursor struct {
	File *source.File
	Off  int
	Line uint32
	Col  uint32
}

// NewCursor creates a cursor at 1:1 of f.
func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Line: 1, Col: 1}
}

// EOF проверяет, достигнут ли конец файла.
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.File.Content)
}

// Rest returns the unread part of the file.
func (c *Cursor) Rest() []byte {
	return c.File.Content[c.Off:]
}

// Info is the position of the next unread byte.
func (c *Cursor) Info() source.Info {
	return source.Info{File: c.File.ID, Line: c.Line, Col: c.Col}
}

// Advance consumes n bytes. Columns count runes; \n, \r\n and a bare \r
// each end a line.
func (c *Cursor) Advance(n int) {
	text := c.File.Content[c.Off : c.Off+n]
	for i := 0; i < len(text); {
		switch text[i] {
		case '\n':
			c.Line++
			c.Col = 1
			i++
		case '\r':
			c.Line++
			c.Col = 1
			i++
			if i < len(text) && text[i] == '\n' {
				i++
			}
		default:
			_, size := utf8.DecodeRune(text[i:])
			c.Col++
			i += size
		}
	}
	c.Off += n
}
