// Package tui is the edit surface: a textarea for the draft and a margin
// column that keeps each note beside its paragraph. All core state changes
// flow through here as discrete, serialized bubbletea messages.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/idavey/marginalia/internal/annotate"
	"github.com/idavey/marginalia/internal/kv"
	"github.com/idavey/marginalia/internal/layout"
	"github.com/idavey/marginalia/internal/llm"
	"github.com/idavey/marginalia/internal/note"
	"github.com/idavey/marginalia/internal/segment"
	"github.com/idavey/marginalia/internal/trigger"
)

// Config wires runtime options into the program.
type Config struct {
	KV        kv.Store
	Generator llm.Generator
	Strategy  trigger.Strategy
	Logger    zerolog.Logger
	// SeedText pre-fills an empty session, typically from -import.
	SeedText string
}

type model struct {
	config Config

	editor  textarea.Model
	spinner spinner.Model

	store      *note.Store
	controller *trigger.Controller
	annotator  *annotate.Annotator
	jobs       *jobBus
	// taskIDs tracks the in-flight annotation per paragraph fingerprint;
	// the attachment point for cancellation if it ever grows one.
	taskIDs map[string]string

	paragraphs []segment.Paragraph
	positions  layout.Positions
	lastText   string

	width       int
	height      int
	helpVisible bool
	infoMessage string
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	editor := textarea.New()
	editor.Placeholder = "Start writing. A blank line finishes a paragraph."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	store := note.NewStore(config.KV, config.Logger)

	m := &model{
		config:     config,
		editor:     editor,
		spinner:    spin,
		store:      store,
		controller: trigger.New(trigger.NewPolicy(config.Strategy), store, config.Logger),
		jobs:       newJobBus(config.Logger),
		taskIDs:    map[string]string{},
		positions:  layout.Positions{},
	}
	if config.Generator != nil {
		m.annotator = annotate.New(config.Generator, config.Logger)
		m.infoMessage = "Write freely — finish a paragraph with a blank line and a note may join you."
	} else {
		m.infoMessage = "Margin notes disabled: configure Ollama or OpenAI to enable them."
	}

	doc, ok := config.KV.GetItem(DocumentKey)
	if !ok && config.SeedText != "" {
		doc = config.SeedText
	}
	if doc != "" {
		m.editor.SetValue(doc)
		m.lastText = doc
		m.paragraphs = segment.Split(doc)
		m.store.Rebind(m.paragraphs)
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, recomputeLayoutCmd(m.paragraphs, m.metrics()))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.store.Pending() > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(m.editorWidth())
		m.editor.SetHeight(m.editorHeight())
		return m, recomputeLayoutCmd(m.paragraphs, m.metrics())

	case layoutMsg:
		m.positions = msg.positions
		return m, nil

	case jobSignalMsg:
		// Start/finish snapshots are logged by the bus; nothing to redraw.
		return m, nil

	case jobResultEnvelope:
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)

	case annotationResultMsg:
		delete(m.taskIDs, msg.fingerprint)
		if msg.ok {
			m.store.Resolve(msg.fingerprint, msg.result)
		} else {
			m.store.Fail(msg.fingerprint)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlG:
			m.helpVisible = !m.helpVisible
			return m, nil
		}
		var editorCmd tea.Cmd
		m.editor, editorCmd = m.editor.Update(msg)
		cmds := append([]tea.Cmd{editorCmd}, m.afterEdit(msg)...)
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// afterEdit runs the core pipeline for one keystroke: re-segment if the
// text changed, re-bind stored notes, and feed the trigger controller both
// the content-change and key events in arrival order.
func (m *model) afterEdit(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	text := m.editor.Value()
	if text != m.lastText {
		m.lastText = text
		m.persistDocument(text)
		m.paragraphs = segment.Split(text)
		m.store.Rebind(m.paragraphs)
		if cmd := m.observe(trigger.Event{Kind: trigger.EventContentChanged}); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, recomputeLayoutCmd(m.paragraphs, m.metrics()))
	}

	ev := trigger.Event{Kind: trigger.EventKeyPressed, Terminator: msg.Type == tea.KeyEnter}
	if cmd := m.observe(ev); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (m *model) observe(ev trigger.Event) tea.Cmd {
	if m.annotator == nil {
		return nil
	}
	req, ok := m.controller.Observe(ev, m.paragraphs)
	if !ok {
		return nil
	}
	id, cmd := m.jobs.Start(jobKindAnnotate, annotateJob(m.annotator, req))
	m.taskIDs[req.Fingerprint] = id
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *model) persistDocument(text string) {
	if err := m.config.KV.SetItem(DocumentKey, text); err != nil {
		m.config.Logger.Warn().Err(err).Msg("persist document")
	}
}

func (m *model) metrics() layout.Metrics {
	return layout.Metrics{
		ContentWidth: m.editorWidth() - 2,
		LineHeight:   1,
		TopPadding:   0,
		ParagraphGap: 1,
	}
}

func (m *model) marginWidth() int {
	width := m.width / 3
	if width < minMarginWidth {
		width = minMarginWidth
	}
	if width > maxMarginWidth {
		width = maxMarginWidth
	}
	return width
}

func (m *model) editorWidth() int {
	width := m.width - m.marginWidth() - 4
	if width < minEditorWidth {
		width = minEditorWidth
	}
	return width
}

func (m *model) editorHeight() int {
	height := m.height - chromeHeight
	if height < minEditorHeight {
		height = minEditorHeight
	}
	return height
}
