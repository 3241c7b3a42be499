package tui

import (
	"github.com/idavey/marginalia/internal/annotate"
	"github.com/idavey/marginalia/internal/layout"
)

// DocumentKey is where the raw document text lives in the key/value
// collaborator. Notes have their own key owned by the note store.
const DocumentKey = "marginalia.document"

const appTagline = "Write freely; the margin listens."

const (
	minEditorWidth  = 40
	minMarginWidth  = 24
	maxMarginWidth  = 44
	chromeHeight    = 7
	minEditorHeight = 8
)

// layoutMsg delivers a freshly recomputed position map. Positions are
// derived off the update path so the measurement happens after the frame
// that changed the content, not during it.
type layoutMsg struct {
	positions layout.Positions
}

// annotationResultMsg completes one annotation exchange. The record is
// addressed by the fingerprint captured at trigger time, because re-binding
// may have moved it to a different index while the request was in flight.
// ok mirrors the protocol client: false means the collaborator was
// unreachable and the store entry should move to failed.
type annotationResultMsg struct {
	fingerprint string
	result      annotate.Result
	ok          bool
}
