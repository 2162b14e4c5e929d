package ingest

import (
	"fmt"
	"strings"

	"github.com/dgallion1/numthm/internal/book"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseSummary builds a book from a SUMMARY.md table of contents and the
// chapter source files it links to. List nesting drives both the chapter
// hierarchy and the section position used for hierarchical numbering.
func ParseSummary(src []byte, files map[string][]byte, opts Options) (*book.Book, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	b := &book.Book{}
	counter := 0

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		list, ok := n.(*ast.List)
		if !ok {
			continue
		}
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			counter++
			ch, err := summaryChapter(item, []int{counter}, src, files, opts)
			if err != nil {
				return nil, err
			}
			b.Chapters = append(b.Chapters, ch)
		}
	}

	if len(b.Chapters) == 0 {
		return nil, fmt.Errorf("SUMMARY.md contains no chapter list")
	}
	return b, nil
}

// summaryChapter builds one chapter (and its sub-items) from a list item.
func summaryChapter(item ast.Node, scope []int, src []byte, files map[string][]byte, opts Options) (*book.Chapter, error) {
	ch := &book.Chapter{Number: append([]int(nil), scope...)}
	subIdx := 0

	for n := item.FirstChild(); n != nil; n = n.NextSibling() {
		if list, ok := n.(*ast.List); ok {
			for sub := list.FirstChild(); sub != nil; sub = sub.NextSibling() {
				subIdx++
				subScope := append(append([]int(nil), scope...), subIdx)
				subCh, err := summaryChapter(sub, subScope, src, files, opts)
				if err != nil {
					return nil, err
				}
				ch.SubItems = append(ch.SubItems, subCh)
			}
			continue
		}
		if link := findLink(n); link != nil {
			ch.Path = strings.TrimSpace(string(link.Destination))
			ch.Name = strings.TrimSpace(string(link.Text(src)))
		} else if ch.Name == "" {
			// A list entry without a link is a draft chapter.
			ch.Name = strings.TrimSpace(string(n.Text(src)))
		}
	}

	if ch.Path != "" {
		data, ok := files[ch.Path]
		if !ok {
			return nil, fmt.Errorf("SUMMARY.md links %s but the archive has no such file", ch.Path)
		}
		conv, err := ForFile(ch.Path, opts)
		if err != nil {
			return nil, fmt.Errorf("chapter %s: %w", ch.Path, err)
		}
		content, err := conv.Convert(strings.NewReader(string(data)), ch.Path)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", ch.Path, err)
		}
		ch.Content = content
	}

	return ch, nil
}

func findLink(n ast.Node) *ast.Link {
	if link, ok := n.(*ast.Link); ok {
		return link
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if link := findLink(c); link != nil {
			return link
		}
	}
	return nil
}
