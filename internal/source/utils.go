package source

import (
	"path/filepath"
	"slices"
)

// normalizeCRLF rewrites every \r\n to \n, leaving lone \r untouched.
// Reports whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol maps a byte offset to a 1-based line/column position.
// A '\n' belongs to the line it terminates.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Binary search for the number of newlines strictly before off.
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	before := lo // newlines with offset < off

	if before == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	lineStart := lineIdx[before-1] + 1
	return LineCol{Line: uint32(before + 1), Col: off - lineStart + 1}
}

func normalizePath(p string) string {
	// Keep one canonical form for cross-platform diffs.
	return filepath.ToSlash(filepath.Clean(p))
}
