// Package segment derives paragraph boundaries from raw document text.
//
// Paragraphs are recomputed wholesale on every edit and addressed by their
// 0-based order of appearance; nothing here holds state between calls.
package segment

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Paragraph is a maximal blank-line-delimited, non-blank span of the
// document. Offsets index into the raw document string.
type Paragraph struct {
	Index       int
	Text        string
	StartOffset int
	EndOffset   int
}

// Split maps a document to its ordered paragraphs. Runs of non-blank lines
// separated by at least one blank line form a paragraph; blank runs are
// dropped, not indexed. The result is deterministic for identical input.
func Split(document string) []Paragraph {
	lines := strings.Split(document, "\n")

	var paragraphs []Paragraph
	offset := 0
	blockStart := -1
	blockEnd := 0

	flush := func() {
		if blockStart < 0 {
			return
		}
		raw := document[blockStart:blockEnd]
		text := strings.TrimSpace(raw)
		if text != "" {
			paragraphs = append(paragraphs, Paragraph{
				Index:       len(paragraphs),
				Text:        text,
				StartOffset: blockStart,
				EndOffset:   blockEnd,
			})
		}
		blockStart = -1
	}

	for _, line := range lines {
		lineEnd := offset + len(line)
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if blockStart < 0 {
				blockStart = offset
			}
			blockEnd = lineEnd
		}
		offset = lineEnd + 1
	}
	flush()
	return paragraphs
}

// Join renders paragraphs back into canonical document form: trimmed blocks
// separated by a single blank line. Split(Join(Split(d))) reproduces the
// same boundaries as Split(d).
func Join(paragraphs []Paragraph) string {
	parts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n\n")
}

// Fingerprint returns a stable content-derived identifier for a paragraph.
// Case and internal whitespace do not affect the result, so light
// reformatting keeps a note bound to its paragraph.
func Fingerprint(text string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	h := fnv.New64a()
	_, _ = h.Write([]byte(normalized))
	return fmt.Sprintf("%016x", h.Sum64())
}
