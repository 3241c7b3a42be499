// Package layout derives the vertical offset of every paragraph so margin
// notes can sit beside their source text. The map is a pure cache: it is
// recomputed wholesale from the current document and metrics, never patched
// incrementally, so it is always consistent after arbitrary edits.
package layout

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/idavey/marginalia/internal/segment"
)

const minContentWidth = 20

// Metrics captures the measured geometry of the editor column. Values come
// from the rendering layer after its layout pass has settled.
type Metrics struct {
	// ContentWidth is the wrap width of paragraph text, in cells.
	ContentWidth int
	// LineHeight is rows per wrapped text line; 1 in a terminal.
	LineHeight int
	// TopPadding is rows above the first paragraph.
	TopPadding int
	// ParagraphGap is rows separating consecutive paragraphs.
	ParagraphGap int
}

// Positions maps paragraph index to the row of its first rendered line.
type Positions map[int]int

// Recompute builds the full position map for the given segmentation.
// Deterministic in its inputs; holds no state that could survive a missed
// recomputation.
func Recompute(paragraphs []segment.Paragraph, m Metrics) Positions {
	if m.ContentWidth < minContentWidth {
		m.ContentWidth = minContentWidth
	}
	if m.LineHeight <= 0 {
		m.LineHeight = 1
	}
	if m.ParagraphGap <= 0 {
		m.ParagraphGap = 1
	}

	positions := make(Positions, len(paragraphs))
	row := m.TopPadding
	for _, p := range paragraphs {
		positions[p.Index] = row
		row += lineCount(p.Text, m.ContentWidth)*m.LineHeight + m.ParagraphGap
	}
	return positions
}

func lineCount(text string, width int) int {
	wrapped := wordwrap.String(text, width)
	return strings.Count(wrapped, "\n") + 1
}
