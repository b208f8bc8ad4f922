// Package encoding provides text decoding for wireframe record files.
package encoding

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewReader wraps r so that a leading byte order mark is honored.
// UTF-8 BOMs are stripped and UTF-16 input is decoded to UTF-8.
// Input without a BOM passes through unchanged.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}
