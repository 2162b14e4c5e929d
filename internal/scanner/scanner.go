// Package scanner locates environment-definition and reference markers in
// raw chapter text without touching anything outside recognized matches.
package scanner

import "regexp"

// Kind tags what a match is.
type Kind int

const (
	// KindEnv is an environment definition: {{key}}{label}[title].
	KindEnv Kind = iota
	// KindRef is a cross-reference: {{ref: label}} or {{tref: label}}.
	KindRef
)

// Match is one located marker with its raw captured fields.
// Start and End are byte offsets into the scanned text.
type Match struct {
	Kind  Kind
	Start int
	End   int

	Key      string // environment key, or "ref"/"tref" for references
	Label    string
	HasLabel bool
	Title    string
	HasTitle bool
}

// Definition grammar: {{key}} optionally followed immediately by {label},
// optionally followed immediately by [title]. Label and title bodies exclude
// their closing delimiter and newlines. The key charset cannot contain ':',
// which keeps definitions disjoint from the ref/tref grammar.
var envPattern = regexp.MustCompile(`\{\{([A-Za-z][A-Za-z0-9_-]*)\}\}(?:\{([^}\n]*)\})?(?:\[([^\]\n]*)\])?`)

// Reference grammar: exactly one space after the colon.
var refPattern = regexp.MustCompile(`\{\{(ref|tref): ([^}\n]*)\}\}`)

// EnvMarkers returns all environment-definition matches in text, left to
// right, non-overlapping, earliest start wins.
func EnvMarkers(text string) []Match {
	idx := envPattern.FindAllStringSubmatchIndex(text, -1)
	matches := make([]Match, 0, len(idx))
	for _, m := range idx {
		match := Match{
			Kind:  KindEnv,
			Start: m[0],
			End:   m[1],
			Key:   text[m[2]:m[3]],
		}
		if m[4] >= 0 {
			match.HasLabel = true
			match.Label = text[m[4]:m[5]]
		}
		if m[6] >= 0 {
			match.HasTitle = true
			match.Title = text[m[6]:m[7]]
		}
		matches = append(matches, match)
	}
	return matches
}

// RefMarkers returns all reference matches in text, left to right,
// non-overlapping, earliest start wins.
func RefMarkers(text string) []Match {
	idx := refPattern.FindAllStringSubmatchIndex(text, -1)
	matches := make([]Match, 0, len(idx))
	for _, m := range idx {
		matches = append(matches, Match{
			Kind:     KindRef,
			Start:    m[0],
			End:      m[1],
			Key:      text[m[2]:m[3]],
			Label:    text[m[4]:m[5]],
			HasLabel: true,
		})
	}
	return matches
}
