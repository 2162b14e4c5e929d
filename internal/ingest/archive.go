package ingest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/numthm/internal/book"
)

// FromArchive builds a book from a zip of chapter sources. When the archive
// carries a SUMMARY.md (at the root or under src/), it drives the chapter
// hierarchy; otherwise every markdown file becomes a top-level chapter in
// sorted path order.
func FromArchive(data []byte, opts Options) (*book.Book, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	files := make(map[string][]byte)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		files[f.Name] = content
	}

	if summary, ok := files["SUMMARY.md"]; ok {
		return ParseSummary(summary, files, opts)
	}
	if summary, ok := files["src/SUMMARY.md"]; ok {
		return ParseSummary(summary, stripPrefix(files, "src/"), opts)
	}

	return flatBook(files)
}

// flatBook makes every markdown file a top-level chapter, sorted by path.
func flatBook(files map[string][]byte) (*book.Book, error) {
	var paths []string
	for name := range files {
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".md" || ext == ".markdown" {
			paths = append(paths, name)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("archive contains no SUMMARY.md and no markdown chapters")
	}
	sort.Strings(paths)

	b := &book.Book{}
	for i, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		b.Chapters = append(b.Chapters, &book.Chapter{
			Name:    name,
			Path:    path,
			Number:  []int{i + 1},
			Content: string(files[path]),
		})
	}
	return b, nil
}

func stripPrefix(files map[string][]byte, prefix string) map[string][]byte {
	out := make(map[string][]byte, len(files))
	for name, data := range files {
		out[strings.TrimPrefix(name, prefix)] = data
	}
	return out
}
