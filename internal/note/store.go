package note

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/idavey/marginalia/internal/annotate"
	"github.com/idavey/marginalia/internal/kv"
	"github.com/idavey/marginalia/internal/segment"
)

// StorageKey is where the serialized note mapping lives in the key/value
// collaborator.
const StorageKey = "marginalia.notes"

// Store maps paragraph indices to note records. All mutations flow through
// it, each one written through to the collaborator immediately. Transitions
// are driven by the serialized edit/result events of the UI loop, so the
// store needs no locking of its own.
type Store struct {
	kv      kv.Store
	logger  zerolog.Logger
	records map[int]Record
}

// NewStore loads persisted state once and returns the store. Malformed
// persisted data starts the store empty; it never blocks startup.
func NewStore(store kv.Store, logger zerolog.Logger) *Store {
	s := &Store{kv: store, logger: logger, records: map[int]Record{}}
	raw, ok := store.GetItem(StorageKey)
	if !ok || raw == "" {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s.records); err != nil {
		logger.Warn().Err(err).Msg("persisted notes unreadable, starting empty")
		s.records = map[int]Record{}
	}
	// A pending record from an earlier session has no job left to finish
	// it; demote it to failed so the margin never spins forever.
	demoted := false
	for index, rec := range s.records {
		if rec.Status != StatusPending {
			continue
		}
		rec.Status = StatusFailed
		rec.Kind = annotate.KindCommentary
		rec.Text = FailedText
		rec.UpdatedAt = time.Now()
		s.records[index] = rec
		demoted = true
	}
	if demoted {
		s.persist()
	}
	return s
}

// Get returns the record for index, reporting whether one exists. A missing
// record is the "absent" lifecycle state.
func (s *Store) Get(index int) (Record, bool) {
	rec, ok := s.records[index]
	return rec, ok
}

// Len reports how many paragraphs currently carry a note in any state.
func (s *Store) Len() int { return len(s.records) }

// Pending reports how many notes are in flight.
func (s *Store) Pending() int {
	n := 0
	for _, rec := range s.records {
		if rec.Status == StatusPending {
			n++
		}
	}
	return n
}

// Indices returns the annotated paragraph indices in ascending order.
func (s *Store) Indices() []int {
	out := make([]int, 0, len(s.records))
	for idx := range s.records {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// SetPending marks index as having a request in flight. It refuses when any
// record already exists there: at most one request per index, and settled
// paragraphs never re-annotate automatically.
func (s *Store) SetPending(index int, fingerprint string) bool {
	if _, exists := s.records[index]; exists {
		return false
	}
	s.records[index] = Record{
		Status:      StatusPending,
		Text:        PendingText,
		Fingerprint: fingerprint,
		Visible:     true,
		UpdatedAt:   time.Now(),
	}
	s.persist()
	return true
}

// Resolve records the annotation result on the pending record carrying
// fingerprint, wherever re-binding moved it since the trigger fired. Only a
// pending record accepts the transition; a missing or settled record
// reports false and nothing is written.
func (s *Store) Resolve(fingerprint string, result annotate.Result) bool {
	index, ok := s.findPending(fingerprint)
	if !ok {
		return false
	}
	rec := s.records[index]
	rec.Status = StatusResolved
	rec.Kind = result.Kind
	rec.Text = result.Text
	rec.UpdatedAt = time.Now()
	s.records[index] = rec
	s.persist()
	return true
}

// Fail marks the pending record carrying fingerprint as failed with the
// fixed fallback line. Terminal unless the caller clears and re-triggers.
func (s *Store) Fail(fingerprint string) bool {
	index, ok := s.findPending(fingerprint)
	if !ok {
		return false
	}
	rec := s.records[index]
	rec.Status = StatusFailed
	rec.Kind = annotate.KindCommentary
	rec.Text = FailedText
	rec.UpdatedAt = time.Now()
	s.records[index] = rec
	s.persist()
	return true
}

func (s *Store) findPending(fingerprint string) (int, bool) {
	for _, index := range sortedKeys(s.records) {
		rec := s.records[index]
		if rec.Status == StatusPending && rec.Fingerprint == fingerprint {
			return index, true
		}
	}
	return 0, false
}

// Clear removes the record at index, returning that paragraph to absent.
func (s *Store) Clear(index int) {
	if _, ok := s.records[index]; !ok {
		return
	}
	delete(s.records, index)
	s.persist()
}

// Rebind realigns records with a fresh segmentation. A record whose
// fingerprint matches a current paragraph follows that paragraph to its new
// index; records pointing past the end of the document with no surviving
// paragraph are pruned. Records at a still-valid index keep their slot even
// if the text changed.
func (s *Store) Rebind(paragraphs []segment.Paragraph) {
	byFingerprint := make(map[string]int, len(paragraphs))
	for _, p := range paragraphs {
		fp := segment.Fingerprint(p.Text)
		if _, seen := byFingerprint[fp]; !seen {
			byFingerprint[fp] = p.Index
		}
	}

	next := make(map[int]Record, len(s.records))
	changed := false
	for _, idx := range sortedKeys(s.records) {
		rec := s.records[idx]
		target := idx
		if rec.Fingerprint != "" {
			if match, ok := byFingerprint[rec.Fingerprint]; ok {
				target = match
			}
		}
		if target >= len(paragraphs) {
			changed = true
			continue
		}
		if _, taken := next[target]; taken {
			changed = true
			continue
		}
		if target != idx {
			changed = true
		}
		next[target] = rec
	}
	if !changed {
		return
	}
	s.records = next
	s.persist()
}

// persist writes the full mapping through to the collaborator. A write
// failure is logged and absorbed; in-memory state stays authoritative for
// the rest of the session.
func (s *Store) persist() {
	payload, err := json.Marshal(s.records)
	if err != nil {
		s.logger.Error().Err(err).Msg("serialize notes")
		return
	}
	if err := s.kv.SetItem(StorageKey, string(payload)); err != nil {
		s.logger.Warn().Err(err).Msg("persist notes")
	}
}

func sortedKeys(records map[int]Record) []int {
	keys := make([]int, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
