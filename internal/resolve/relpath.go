package resolve

import (
	"path"
	"strings"
)

// relPath computes the relative path from the directory containing fromPath
// to the file at toPath. Chapter paths are slash-separated book identifiers,
// not OS paths. Identical paths yield "", so links within one chapter become
// bare "#label" fragments.
func relPath(fromPath, toPath string) string {
	from := path.Clean(fromPath)
	to := path.Clean(toPath)
	if from == to {
		return ""
	}

	fromDir := path.Dir(from)
	var fromParts []string
	if fromDir != "." {
		fromParts = strings.Split(fromDir, "/")
	}
	toParts := strings.Split(to, "/")

	// Drop the common directory prefix.
	common := 0
	for common < len(fromParts) && common < len(toParts)-1 && fromParts[common] == toParts[common] {
		common++
	}

	var out []string
	for range fromParts[common:] {
		out = append(out, "..")
	}
	out = append(out, toParts[common:]...)
	return strings.Join(out, "/")
}
