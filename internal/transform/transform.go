// Package transform runs the two-pass numbering and reference-resolution
// algorithm over a whole book.
package transform

import (
	"fmt"

	"github.com/dgallion1/numthm/internal/book"
	"github.com/dgallion1/numthm/internal/envs"
	"github.com/dgallion1/numthm/internal/number"
	"github.com/dgallion1/numthm/internal/resolve"
)

// Options configures a run.
type Options struct {
	// Prefix enables hierarchical numbering: environment numbers are
	// prefixed with the chapter's dot-joined section position.
	Prefix bool
	// Custom environments registered after the built-ins.
	Custom []envs.Spec
}

// Result summarizes a completed run. Warnings are reported as a side
// channel; they are never embedded in the document text.
type Result struct {
	Environments  int            `json:"environments"`
	LabelsDefined int            `json:"labels_defined"`
	RefsResolved  int            `json:"refs_resolved"`
	Warnings      []book.Warning `json:"warnings"`
}

// Run rewrites b in place. Pass 1 numbers every environment marker and
// builds the label table; pass 2 resolves references against the completed
// table. References may point at labels defined in later chapters, so pass 2
// must not start until pass 1 has seen the whole book.
//
// A registry error (duplicate environment key) is fatal and aborts before
// any chapter is touched. Everything else degrades to warnings.
func Run(b *book.Book, opts Options) (Result, error) {
	reg, err := envs.NewRegistry(opts.Custom)
	if err != nil {
		return Result{}, fmt.Errorf("build environment registry: %w", err)
	}

	res := Result{Warnings: []book.Warning{}}
	labels := number.NewLabelTable()

	// Pass 1: number environments. Counters reset at each top-level chapter
	// boundary; sub-items share their parent chapter's counters.
	for _, top := range b.Chapters {
		ctrs := number.NewCounters()
		top.Walk(func(c *book.Chapter) {
			if c.IsDraft() {
				return
			}
			content, n, warns := number.RewriteChapter(c.Content, c.Path, c.Number, reg, ctrs, labels, opts.Prefix)
			c.Content = content
			res.Environments += n
			res.Warnings = append(res.Warnings, warns...)
		})
	}
	res.LabelsDefined = labels.Len()

	// Pass 2: resolve references against the now-complete table.
	b.Walk(func(c *book.Chapter) {
		if c.IsDraft() {
			return
		}
		content, n, warns := resolve.RewriteChapter(c.Content, c.Path, labels)
		c.Content = content
		res.RefsResolved += n
		res.Warnings = append(res.Warnings, warns...)
	})

	return res, nil
}
