// Package number implements pass 1: it walks chapters in traversal order,
// assigns numbers to environment markers and builds the label table.
package number

import (
	"fmt"
	"strings"

	"github.com/dgallion1/numthm/internal/book"
	"github.com/dgallion1/numthm/internal/envs"
	"github.com/dgallion1/numthm/internal/scanner"
)

// RewriteChapter replaces every recognized environment marker in text with
// its numbered header (and anchor when labeled), updating ctrs and labels as
// it goes. Markers whose key is not in the registry are left verbatim.
// It returns the rewritten text, the number of occurrences numbered, and any
// duplicate-label warnings.
func RewriteChapter(text, path string, scope []int, reg *envs.Registry, ctrs Counters, labels *LabelTable, withPrefix bool) (string, int, []book.Warning) {
	matches := scanner.EnvMarkers(text)
	if len(matches) == 0 {
		return text, 0, nil
	}

	prefix := ""
	if withPrefix {
		prefix = Prefix(scope)
	}

	var sb strings.Builder
	var warnings []book.Warning
	numbered := 0
	last := 0

	for _, m := range matches {
		spec, ok := reg.Lookup(m.Key)
		if !ok {
			// Unrecognized key: ordinary text, not an error.
			continue
		}

		sb.WriteString(text[last:m.Start])
		last = m.End

		n := ctrs.Next(m.Key)
		numbered++
		numStr := fmt.Sprintf("%s%d", prefix, n)
		numName := spec.Name + " " + numStr

		if m.HasLabel {
			entry := Entry{
				NumName:  numName,
				Title:    m.Title,
				HasTitle: m.HasTitle,
				Path:     path,
			}
			if !labels.Insert(m.Label, entry) {
				first, _ := labels.Get(m.Label)
				warnings = append(warnings, book.Warning{
					Severity: book.SeverityWarning,
					Message:  fmt.Sprintf("%s: label %q already defined in %s; first definition wins", numName, m.Label, first.Path),
					Path:     path,
				})
			}
			// The occurrence still renders normally; only cross-references
			// to the label are affected by a collision.
			fmt.Fprintf(&sb, "<a name=%q></a>\n", m.Label)
		}

		if m.HasTitle {
			fmt.Fprintf(&sb, "%s%s (%s).%s", spec.Emph, numName, m.Title, spec.Emph)
		} else {
			fmt.Fprintf(&sb, "%s%s.%s", spec.Emph, numName, spec.Emph)
		}
	}

	sb.WriteString(text[last:])
	return sb.String(), numbered, warnings
}
