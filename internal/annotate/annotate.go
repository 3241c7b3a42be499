// Package annotate implements the two-stage margin-note protocol: classify
// the paragraph's content type, then generate a short response using the
// strategy tuned for that type.
//
// The public contract is total: Annotate always returns a displayable
// result, degrading through fallbacks instead of surfacing errors.
package annotate

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/idavey/marginalia/internal/llm"
)

// Label is the content-type category assigned to a paragraph before
// generation. The set is closed; anything unrecognized maps to LabelOther.
type Label string

const (
	LabelJournaling    Label = "journaling"
	LabelBrainstorming Label = "brainstorming"
	LabelTechnical     Label = "technical"
	LabelStorytelling  Label = "storytelling"
	LabelNoteTaking    Label = "note-taking"
	LabelOther         Label = "other"
)

var allLabels = []Label{
	LabelJournaling,
	LabelBrainstorming,
	LabelTechnical,
	LabelStorytelling,
	LabelNoteTaking,
	LabelOther,
}

// ParseLabel normalizes raw classifier output. Only an exact match against
// the closed label set counts; everything else is LabelOther.
func ParseLabel(raw string) Label {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, label := range allLabels {
		if normalized == string(label) {
			return label
		}
	}
	return LabelOther
}

// Kind distinguishes the two margin-note voices.
type Kind string

const (
	KindCommentary Kind = "commentary"
	KindQuestion   Kind = "question"
)

// ParseKind reports whether raw names a recognized kind.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindCommentary:
		return KindCommentary, true
	case KindQuestion:
		return KindQuestion, true
	}
	return "", false
}

// Result is the normalized outcome of one annotation exchange.
type Result struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// FallbackText is the calm user-visible line shown when the collaborator
// itself is unreachable.
const FallbackText = "The margin is quiet right now — keep writing and I'll catch up with you shortly."

// Annotator performs the classify-then-generate exchange.
type Annotator struct {
	gen    llm.Generator
	logger zerolog.Logger
}

// New returns an annotator backed by the given generator.
func New(gen llm.Generator, logger zerolog.Logger) *Annotator {
	return &Annotator{gen: gen, logger: logger}
}

// Annotate runs both protocol stages for one paragraph. The returned result
// is always displayable. ok is false only when the generation stage itself
// failed and the result carries the fixed fallback; classification failures
// and malformed output degrade silently inside a successful result.
func (a *Annotator) Annotate(ctx context.Context, paragraph string) (result Result, ok bool) {
	label := a.classify(ctx, paragraph)

	raw, err := a.gen.Generate(ctx, buildStrategyPrompt(label, paragraph))
	if err != nil {
		a.logger.Warn().Err(err).Str("label", string(label)).Msg("generation stage failed")
		return Result{Kind: KindCommentary, Text: FallbackText}, false
	}

	result, wellFormed := parseResult(raw)
	if !wellFormed {
		a.logger.Debug().Str("label", string(label)).Msg("malformed generation output, using raw text")
	}
	if result.Text == "" {
		result.Text = FallbackText
	}
	return result, true
}

// classify never fails the overall operation; any collaborator error here
// defaults the label to LabelOther.
func (a *Annotator) classify(ctx context.Context, paragraph string) Label {
	raw, err := a.gen.Generate(ctx, buildClassifyPrompt(paragraph))
	if err != nil {
		a.logger.Warn().Err(err).Msg("classification stage failed, defaulting to other")
		return LabelOther
	}
	return ParseLabel(raw)
}
