package ingest

import "io"

// TextConverter handles markdown and plain-text chapter files. Content is
// passed through byte for byte so markers stay intact.
type TextConverter struct{}

func (c *TextConverter) Convert(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
