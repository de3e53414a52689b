// Package tui is an interactive browser for ad-hoc queries against a
// trained matcher.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docmatch/internal/domain"
)

// MatchPort is the TUI-facing subset of the matcher service.
type MatchPort interface {
	Query(query string, topN int) ([]domain.Match, error)
	Document(id string) (domain.Document, bool)
}

// Summarizer condenses a training document for the preview pane.
type Summarizer interface {
	Summarize(doc string, maxSentences int) (string, error)
}

const previewRunes = 400

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selectedLine = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// Model is the Bubble Tea model for the match browser.
type Model struct {
	port         MatchPort
	summarizer   Summarizer
	topN         int
	maxSentences int

	input    textinput.Model
	pane     viewport.Model
	header   string
	results  []domain.Match
	cursor   int
	status   string
	failed   bool
	showBody bool
	ready    bool
}

// New builds the browser. header describes the loaded training set.
func New(port MatchPort, sum Summarizer, header string, topN, maxSentences int) Model {
	in := textinput.New()
	in.Prompt = "query> "
	in.Placeholder = "paste document text, Enter to match"
	in.CharLimit = 0
	in.Focus()
	return Model{
		port:         port,
		summarizer:   sum,
		topN:         topN,
		maxSentences: maxSentences,
		input:        in,
		pane:         viewport.New(0, 0),
		header:       header,
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update routes window and key events. Keys the browser does not claim go
// to the text input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if q := strings.TrimSpace(m.input.Value()); q != "" {
				m.runQuery(q)
				return m, nil
			}
		case tea.KeyDown:
			if m.move(1) {
				return m, nil
			}
		case tea.KeyUp:
			if m.move(-1) {
				return m, nil
			}
		case tea.KeyTab:
			m.showBody = !m.showBody
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	_, frame := boxStyle.GetFrameSize()
	// title, header, input box, status
	chrome := 2 + (1 + frame) + 1
	m.pane.Width = maxInt(20, width)
	m.pane.Height = maxInt(3, height-chrome-frame)
	m.ready = true
	m.refresh()
}

func (m *Model) runQuery(q string) {
	res, err := m.port.Query(q, m.topN)
	if err != nil {
		m.results, m.failed = nil, true
		m.status = "query failed: " + err.Error()
	} else {
		m.results, m.failed, m.cursor = res, false, 0
		m.status = fmt.Sprintf("%d matches for %q", len(res), abbreviate(q, 40))
	}
	m.refresh()
}

// move shifts the selection with wrap-around. It reports whether there was
// anything to select.
func (m *Model) move(delta int) bool {
	n := len(m.results)
	if n == 0 {
		return false
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.refresh()
	return true
}

func (m *Model) refresh() { m.pane.SetContent(m.renderResults()) }

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	status := statusStyle.Render(m.status)
	if m.failed {
		status = errorStyle.Render(m.status)
	}
	return strings.Join([]string{
		titleStyle.Render("docmatch"),
		mutedStyle.Render(m.header),
		boxStyle.Render(m.pane.View()),
		boxStyle.Render(m.input.View()),
		status + mutedStyle.Render("  up/down select, tab toggles full text, esc quits"),
	}, "\n")
}

func (m Model) renderResults() string {
	if len(m.results) == 0 {
		return mutedStyle.Render("No matches yet.")
	}
	var b strings.Builder
	for i, r := range m.results {
		line := fmt.Sprintf("%2d. %-40s %.4f", i+1, r.DocumentID, r.Score)
		if i == m.cursor {
			line = selectedLine.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + m.preview(m.results[m.cursor].DocumentID))
	return b.String()
}

func (m Model) preview(id string) string {
	doc, ok := m.port.Document(id)
	if !ok {
		return mutedStyle.Render("(document not loaded)")
	}
	if m.showBody || m.summarizer == nil {
		return abbreviate(doc.Content, previewRunes)
	}
	s, err := m.summarizer.Summarize(doc.Content, m.maxSentences)
	if err != nil {
		return errorStyle.Render("summary unavailable: " + err.Error())
	}
	return s
}

func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
