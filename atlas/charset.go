package atlas

import (
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CharsetFromText extracts the codepoints an atlas should cover from raw
// charset text. Order of first appearance is preserved, duplicates are
// dropped, and NUL plus UTF-16 surrogate halves are excluded since neither
// is a renderable scalar.
func CharsetFromText(text string) []rune {
	seen := make(map[rune]bool, len(text))
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if r == 0 || utf16.IsSurrogate(r) {
			continue
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// DecodeCharsetFile decodes the bytes of a charset file into text.
// Charset files come from many editors, so a byte-order mark selects
// UTF-8, UTF-16LE, or UTF-16BE; without one the file is read as UTF-8
// with invalid sequences replaced rather than rejected.
func DecodeCharsetFile(data []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
