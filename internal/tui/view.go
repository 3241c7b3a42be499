package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/idavey/marginalia/internal/annotate"
	"github.com/idavey/marginalia/internal/note"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	taglineStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
	helperStyle     = lipgloss.NewStyle().Faint(true)
	statusBarStyle  = lipgloss.NewStyle().Faint(true)
	editorBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	commentaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("109"))
	questionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	pendingStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
	failedStyle     = lipgloss.NewStyle().Faint(true)
	helpBoxStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

func (m *model) View() string {
	header := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Marginalia"),
		taglineStyle.Render(appTagline),
	)

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		editorBoxStyle.Render(m.editor.View()),
		" ",
		m.marginColumnView(),
	)

	parts := []string{header, body, m.statusBarView()}
	if m.infoMessage != "" {
		parts = append(parts, helperStyle.Render(m.infoMessage))
	}
	if m.helpVisible {
		parts = append(parts, m.helpView())
	}
	return joinNonEmpty(parts)
}

// marginColumnView lays notes into a fixed-height column, each at the row
// the position tracker assigned to its paragraph. When notes would overlap
// the later one slides down; alignment is best effort, order is not.
func (m *model) marginColumnView() string {
	height := m.editorHeight() + 2 // editor box borders
	width := m.marginWidth()
	lines := make([]string, height)

	row := 0
	for _, idx := range m.store.Indices() {
		rec, ok := m.store.Get(idx)
		if !ok || !rec.Visible {
			continue
		}
		if pos, tracked := m.positions[idx]; tracked && pos > row {
			row = pos
		}
		if row >= height {
			break
		}
		for _, line := range strings.Split(m.renderNote(rec, width), "\n") {
			if row >= height {
				break
			}
			lines[row] = line
			row++
		}
		row++
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderNote(rec note.Record, width int) string {
	wrap := width - 2
	if wrap < 10 {
		wrap = 10
	}
	switch rec.Status {
	case note.StatusPending:
		return pendingStyle.Render(m.spinner.View() + " " + rec.Text)
	case note.StatusFailed:
		return failedStyle.Render(wordwrap.String(rec.Text, wrap))
	default:
		body := wordwrap.String(rec.Text, wrap)
		if rec.Kind == annotate.KindQuestion {
			return questionStyle.Render(body)
		}
		return commentaryStyle.Render(body)
	}
}

func (m *model) statusBarView() string {
	stats := []string{
		fmt.Sprintf("Paragraphs %d", len(m.paragraphs)),
		fmt.Sprintf("Notes %d", m.store.Len()),
	}
	if pending := m.store.Pending(); pending > 0 {
		stats = append(stats, fmt.Sprintf("%s %d in flight", m.spinner.View(), pending))
	}
	if m.config.Generator != nil {
		stats = append(stats, m.config.Generator.Name())
	} else {
		stats = append(stats, "LLM off")
	}
	stats = append(stats, string(m.controller.Strategy()))
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) helpView() string {
	lines := []string{
		helperStyle.Render("• finish a paragraph with a blank line (Enter twice) to invite a margin note."),
		helperStyle.Render("• notes follow their paragraph as you edit; deleted paragraphs lose theirs."),
		helperStyle.Render("• Ctrl+G toggles this help, Ctrl+C quits. Everything saves as you type."),
	}
	return helpBoxStyle.Render(strings.Join(lines, "\n"))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
