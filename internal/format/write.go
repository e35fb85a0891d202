package format

import (
	"named/internal/source"
)

// Writer accumulates output: copied source fragments and printed nodes.
type Writer struct {
	sf  *source.File
	buf []byte
}

func NewWriter(sf *source.File) *Writer {
	return &Writer{sf: sf, buf: make([]byte, 0, len(sf.Content)+64)}
}

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// CopySpan copies a span of the source file; spans of other files are skipped.
func (w *Writer) CopySpan(sp source.Span) {
	if sp.File != w.sf.ID {
		return
	}
	w.CopyRange(int(sp.Start), int(sp.End))
}

// CopyRange copies source bytes [start, end), clamped to the content.
func (w *Writer) CopyRange(start, end int) {
	start = clamp(start, len(w.sf.Content))
	end = clamp(end, len(w.sf.Content))
	if start >= end {
		return
	}
	w.buf = append(w.buf, w.sf.Content[start:end]...)
}

func clamp(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
