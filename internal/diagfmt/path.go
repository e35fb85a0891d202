package diagfmt

import (
	"path/filepath"
	"strings"

	"named/internal/source"
)

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		return f.RelPath(fs.BaseDir())
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	rel := f.RelPath(fs.BaseDir())
	if strings.HasPrefix(rel, "../") {
		return f.Path
	}
	return rel
}

// location renders "path:line:col".
func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	start, _ := fs.Resolve(sp)
	return displayPath(fs.Get(sp.File), fs, mode) + ":" + itoa(start.Line) + ":" + itoa(start.Col)
}
