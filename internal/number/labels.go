package number

// Entry holds what a cross-reference needs to link to a numbered
// environment occurrence.
type Entry struct {
	NumName  string // numbered name, e.g. "Theorem 1.2.1"
	Title    string
	HasTitle bool
	Path     string // chapter that owns the occurrence
}

// LabelTable maps labels to entries. It is written during pass 1 and must be
// complete before any reference is resolved; pass 2 consumes it through the
// read-only Lookup side.
type LabelTable struct {
	entries map[string]Entry
}

// Lookup is the read-only view handed to the reference resolver.
type Lookup interface {
	Get(label string) (Entry, bool)
}

func NewLabelTable() *LabelTable {
	return &LabelTable{entries: make(map[string]Entry)}
}

// Insert records an entry for label. It returns false without overwriting
// when the label is already present: the first definition wins.
func (t *LabelTable) Insert(label string, e Entry) bool {
	if _, exists := t.entries[label]; exists {
		return false
	}
	t.entries[label] = e
	return true
}

// Get returns the entry for label.
func (t *LabelTable) Get(label string) (Entry, bool) {
	e, ok := t.entries[label]
	return e, ok
}

// Len returns the number of recorded labels.
func (t *LabelTable) Len() int {
	return len(t.entries)
}
