// Package resolve implements pass 2: it substitutes reference markers using
// the label table completed during pass 1.
package resolve

import (
	"fmt"
	"strings"

	"github.com/dgallion1/numthm/internal/book"
	"github.com/dgallion1/numthm/internal/number"
	"github.com/dgallion1/numthm/internal/scanner"
)

// Placeholder replaces references whose label never resolved.
const Placeholder = "**[??]**"

// RewriteChapter replaces every {{ref: label}} and {{tref: label}} marker in
// text with a markdown link to the owning chapter. Unresolved labels degrade
// to Placeholder with a warning instead of failing the run.
// It returns the rewritten text, the number of references resolved, and any
// unresolved-reference warnings.
func RewriteChapter(text, path string, labels number.Lookup) (string, int, []book.Warning) {
	matches := scanner.RefMarkers(text)
	if len(matches) == 0 {
		return text, 0, nil
	}

	var sb strings.Builder
	var warnings []book.Warning
	resolved := 0
	last := 0

	for _, m := range matches {
		sb.WriteString(text[last:m.Start])
		last = m.End

		entry, ok := labels.Get(m.Label)
		if !ok {
			warnings = append(warnings, book.Warning{
				Severity: book.SeverityWarning,
				Message:  fmt.Sprintf("unknown reference %q", m.Label),
				Path:     path,
			})
			sb.WriteString(Placeholder)
			continue
		}

		display := entry.NumName
		if m.Key == "tref" && entry.HasTitle {
			display = entry.Title
		}
		fmt.Fprintf(&sb, "[%s](%s#%s)", display, relPath(path, entry.Path), m.Label)
		resolved++
	}

	sb.WriteString(text[last:])
	return sb.String(), resolved, warnings
}
