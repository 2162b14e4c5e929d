package number

import "strconv"

// Counters tracks the next number per environment key within one top-level
// chapter scope. Values only ever increase; a fresh map is used whenever
// traversal enters a new top-level chapter.
type Counters map[string]int

// NewCounters returns an empty counter state.
func NewCounters() Counters {
	return make(Counters)
}

// Next increments and returns the counter for key, starting from 1.
func (c Counters) Next(key string) int {
	c[key]++
	return c[key]
}

// Prefix renders a ScopePath as a dot-joined hierarchical prefix with a
// trailing dot, e.g. [1,2] -> "1.2.". An empty scope yields "".
func Prefix(scope []int) string {
	if len(scope) == 0 {
		return ""
	}
	var out []byte
	for _, n := range scope {
		out = strconv.AppendInt(out, int64(n), 10)
		out = append(out, '.')
	}
	return string(out)
}
