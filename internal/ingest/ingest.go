// Package ingest builds a book from uploaded material: the native book JSON,
// a zip archive of chapter sources, or a single chapter file. Chapter files
// authored outside markdown (html, docx, pdf drafts) are converted to
// markdown-ish text before the transformation sees them.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/numthm/internal/book"
)

// Options controls format conversion.
type Options struct {
	PDFFallbackPdftotext bool
}

// Converter turns one chapter source file into markdown-ish chapter text.
// Environment and reference markers in the source must survive verbatim.
type Converter interface {
	Convert(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists upload extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".json": true,
	".zip":  true,
	".md":   true,
	".txt":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// ForFile returns the appropriate converter for a chapter source file.
func ForFile(filename string, opts Options) (Converter, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown", ".txt":
		return &TextConverter{}, nil
	case ".html", ".htm":
		return &HTMLConverter{}, nil
	case ".docx":
		return &DOCXConverter{}, nil
	case ".pdf":
		return &PDFConverter{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	default:
		return nil, fmt.Errorf("unsupported chapter format: %s", ext)
	}
}

// FromUpload builds a book from a single uploaded file.
func FromUpload(data []byte, filename string, opts Options) (*book.Book, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		var b book.Book
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("decode book json: %w", err)
		}
		return &b, nil
	case ".zip":
		return FromArchive(data, opts)
	default:
		conv, err := ForFile(filename, opts)
		if err != nil {
			return nil, err
		}
		content, err := conv.Convert(strings.NewReader(string(data)), filename)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", filename, err)
		}
		return singleChapterBook(filename, content), nil
	}
}

// singleChapterBook wraps one chapter's text as a book of its own.
func singleChapterBook(filename, content string) *book.Book {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	path := filename
	if !strings.HasSuffix(path, ".md") {
		path = name + ".md"
	}
	return &book.Book{
		Chapters: []*book.Chapter{{
			Name:    name,
			Path:    path,
			Number:  []int{1},
			Content: content,
		}},
	}
}
