// Package trigger decides when a paragraph has been completed and deserves
// an annotation request. It consumes a typed stream of edit events through
// an explicit state machine; the two supported strategies are pluggable so
// either can drive the same controller.
package trigger

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/idavey/marginalia/internal/note"
	"github.com/idavey/marginalia/internal/segment"
)

// MinParagraphLength is the eligibility floor: trimmed paragraph text
// shorter than this never triggers a request.
const MinParagraphLength = 10

// EventKind discriminates edit-surface signals.
type EventKind int

const (
	// EventKeyPressed is a single keystroke; Terminator marks a
	// paragraph-terminating action (a line break).
	EventKeyPressed EventKind = iota
	// EventContentChanged carries the full document after an edit.
	EventContentChanged
)

// Event is one serialized edit signal crossing into the core.
type Event struct {
	Kind       EventKind
	Terminator bool
}

// Strategy names the trigger policies.
type Strategy string

const (
	// StrategyDoubleTerminator fires when two terminating keystrokes arrive
	// with no other input between them.
	StrategyDoubleTerminator Strategy = "double-terminator"
	// StrategyCountIncrease fires when the paragraph count strictly grows,
	// targeting the second-to-last paragraph (the last one is still being
	// composed).
	StrategyCountIncrease Strategy = "count-increase"
)

// Policy is the replaceable half of the controller: a state machine that
// converts the event stream into "annotate this paragraph now" decisions.
type Policy interface {
	Name() Strategy
	// Observe consumes one event together with the segmentation of the
	// document after that event was applied.
	Observe(ev Event, paragraphs []segment.Paragraph) (target int, fire bool)
}

// NewPolicy returns the policy for strategy, defaulting to double-terminator
// for anything unrecognized.
func NewPolicy(strategy Strategy) Policy {
	if strategy == StrategyCountIncrease {
		return &countIncreasePolicy{}
	}
	return &doubleTerminatorPolicy{}
}

type terminatorState int

const (
	stateIdle terminatorState = iota
	stateAwaitingSecond
)

type doubleTerminatorPolicy struct {
	state terminatorState
}

func (p *doubleTerminatorPolicy) Name() Strategy { return StrategyDoubleTerminator }

func (p *doubleTerminatorPolicy) Observe(ev Event, paragraphs []segment.Paragraph) (int, bool) {
	if ev.Kind != EventKeyPressed {
		return -1, false
	}
	if !ev.Terminator {
		p.state = stateIdle
		return -1, false
	}
	if p.state == stateIdle {
		p.state = stateAwaitingSecond
		return -1, false
	}
	// Second consecutive terminator: the just-completed paragraph is the
	// last one segmentation still sees, the new empty one having no index.
	p.state = stateIdle
	return len(paragraphs) - 1, true
}

type countIncreasePolicy struct {
	prevCount int
}

func (p *countIncreasePolicy) Name() Strategy { return StrategyCountIncrease }

func (p *countIncreasePolicy) Observe(ev Event, paragraphs []segment.Paragraph) (int, bool) {
	if ev.Kind != EventContentChanged {
		return -1, false
	}
	count := len(paragraphs)
	grew := count > p.prevCount
	p.prevCount = count
	if !grew || count < 2 {
		return -1, false
	}
	return count - 2, true
}

// Request describes a fired trigger: the paragraph is already marked
// pending in the store and the caller must run the annotation exchange.
type Request struct {
	Index       int
	Text        string
	Fingerprint string
}

// Controller applies the eligibility gate on top of a policy and requests
// the pending transition from the note store. It never mutates note state
// directly beyond that request.
type Controller struct {
	policy Policy
	store  *note.Store
	logger zerolog.Logger
}

// New wires a controller to its policy and store.
func New(policy Policy, store *note.Store, logger zerolog.Logger) *Controller {
	return &Controller{policy: policy, store: store, logger: logger}
}

// Strategy reports the active policy name.
func (c *Controller) Strategy() Strategy { return c.policy.Name() }

// Observe feeds one event through the policy and, when it fires, through
// the eligibility gate. Short paragraphs and already-annotated indices are
// expected steady state, skipped silently rather than reported as errors.
func (c *Controller) Observe(ev Event, paragraphs []segment.Paragraph) (Request, bool) {
	target, fire := c.policy.Observe(ev, paragraphs)
	if !fire {
		return Request{}, false
	}
	if target < 0 || target >= len(paragraphs) {
		return Request{}, false
	}

	text := strings.TrimSpace(paragraphs[target].Text)
	if utf8.RuneCountInString(text) < MinParagraphLength {
		c.logger.Debug().Int("index", target).Msg("paragraph below eligibility floor")
		return Request{}, false
	}
	if _, exists := c.store.Get(target); exists {
		return Request{}, false
	}

	fingerprint := segment.Fingerprint(text)
	if !c.store.SetPending(target, fingerprint) {
		return Request{}, false
	}
	c.logger.Info().Int("index", target).Str("strategy", string(c.policy.Name())).Msg("annotation triggered")
	return Request{Index: target, Text: text, Fingerprint: fingerprint}, true
}
