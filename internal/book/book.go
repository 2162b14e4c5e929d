package book

// Book is the root of a document tree handed to the transformer by the host.
type Book struct {
	Chapters []*Chapter `json:"chapters"`
}

// Chapter is a recursive unit of the book. Path is the stable identifier
// used for anchors and relative links; chapters without a path are drafts
// and are skipped by the transformation.
type Chapter struct {
	Name     string     `json:"name"`
	Path     string     `json:"path,omitempty"`
	Number   []int      `json:"number,omitempty"` // position in the chapter/section hierarchy
	Content  string     `json:"content"`
	SubItems []*Chapter `json:"sub_items,omitempty"`
}

// IsDraft reports whether the chapter has no backing file.
func (c *Chapter) IsDraft() bool {
	return c.Path == ""
}

// Walk visits every chapter in traversal order: each chapter before its
// sub-items, siblings in declared order.
func (b *Book) Walk(fn func(*Chapter)) {
	for _, c := range b.Chapters {
		c.Walk(fn)
	}
}

// Walk visits the chapter and its sub-items in traversal order.
func (c *Chapter) Walk(fn func(*Chapter)) {
	fn(c)
	for _, sub := range c.SubItems {
		sub.Walk(fn)
	}
}
