package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idavey/marginalia/internal/annotate"
	"github.com/idavey/marginalia/internal/layout"
	"github.com/idavey/marginalia/internal/segment"
	"github.com/idavey/marginalia/internal/trigger"
)

func annotateJob(annotator *annotate.Annotator, req trigger.Request) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 2*time.Minute)
		defer cancel()
		result, ok := annotator.Annotate(ctx, req.Text)
		msg := annotationResultMsg{fingerprint: req.Fingerprint, result: result, ok: ok}
		if !ok {
			return msg, errors.New("generation collaborator unreachable")
		}
		return msg, nil
	}
}

// recomputeLayoutCmd snapshots the segmentation and defers the measurement
// pass to its own command, so positions settle after the frame that changed
// the content or the viewport.
func recomputeLayoutCmd(paragraphs []segment.Paragraph, metrics layout.Metrics) tea.Cmd {
	snapshot := append([]segment.Paragraph(nil), paragraphs...)
	return func() tea.Msg {
		return layoutMsg{positions: layout.Recompute(snapshot, metrics)}
	}
}
