// Package note owns the lifecycle of margin notes: absent → pending →
// resolved | failed, with a visibility bit reserved for dismissal. The
// Store is the only writer of this state and mirrors every mutation to the
// key/value collaborator so a session survives restarts.
package note

import (
	"time"

	"github.com/idavey/marginalia/internal/annotate"
)

// Status is the lifecycle position of one paragraph's note. Absence of a
// record is the implicit "absent" state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
	StatusFailed   Status = "failed"
)

// Placeholder and fallback lines are fixed copy; any failure path reads
// calm, never alarming.
const (
	PendingText = "thinking alongside you…"
	FailedText  = "The margin went quiet — this note didn't make it through."
)

// Record is everything the margin renders for one paragraph index.
type Record struct {
	Status      Status        `json:"status"`
	Kind        annotate.Kind `json:"kind,omitempty"`
	Text        string        `json:"text"`
	Fingerprint string        `json:"fingerprint,omitempty"`
	Visible     bool          `json:"visible"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
