// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tipo/internal/selector"
	"github.com/verte-zerg/tipo/internal/session"
	"github.com/verte-zerg/tipo/internal/stats"
)

type view int

const (
	viewTyping view = iota
	viewResults
)

type keyMap struct {
	Quit    key.Binding
	Restart key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl-c", "quit"),
		),
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl-r", "restart"),
		),
	}
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	resultStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	wpmStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D"))
	accuracyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#69B1FF"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Model implements the Bubble Tea typing UI. It owns one session at a time
// and is the only writer to it; everything it draws comes from Snapshot().
type Model struct {
	corpus []string
	words  int
	sel    *selector.Selector
	keys   keyMap
	now    func() time.Time

	sess *session.Session

	width  int
	height int

	view   view
	report stats.Report
	notice string

	lastWPM float64
	lastAcc float64
	hasLast bool

	err error
}

// NewModel constructs a typing TUI over a validated corpus.
func NewModel(corpus []string, words int, sel *selector.Selector) (*Model, error) {
	return NewModelWithClock(corpus, words, sel, time.Now)
}

// NewModelWithClock constructs a typing TUI with an injected clock for the
// sessions it creates, used in tests to make timing deterministic.
func NewModelWithClock(corpus []string, words int, sel *selector.Selector, now func() time.Time) (*Model, error) {
	m := &Model{
		corpus: corpus,
		words:  words,
		sel:    sel,
		keys:   defaultKeyMap(),
		now:    now,
	}
	if err := m.startSession(); err != nil {
		return nil, err
	}
	return m, nil
}

// Err reports a fatal error that ended the program, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			if err := m.startSession(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			return m, nil
		}
		if m.view == viewResults {
			// The results screen waits for restart or quit.
			return m, nil
		}
		return m.handleTypingKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		m.sess.Feed(session.Backspace())
	case tea.KeyCtrlW:
		m.eraseWord()
	case tea.KeySpace:
		m.feedRunes([]rune{' '})
	case tea.KeyRunes:
		m.feedRunes(msg.Runes)
	}
	if m.sess.Snapshot().Phase == session.PhaseCompleted {
		if err := m.finishSession(); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) feedRunes(runes []rune) {
	for _, r := range runes {
		if m.sess.Feed(session.Char(r)) == session.StepFinished {
			return
		}
	}
}

// eraseWord backs up through the partial word before the cursor, stopping
// at the preceding space.
func (m *Model) eraseWord() {
	for {
		snap := m.sess.Snapshot()
		if snap.Cursor == 0 || snap.Target[snap.Cursor-1] == ' ' {
			return
		}
		if m.sess.Feed(session.Backspace()) != session.StepErased {
			return
		}
	}
}

func (m *Model) startSession() error {
	text, err := m.sel.Text(m.corpus, m.words)
	if err != nil {
		return fmt.Errorf("failed to generate text: %w", err)
	}
	sess, err := session.NewWithClock(text, m.now)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	m.sess = sess
	m.view = viewTyping
	m.notice = ""
	return nil
}

func (m *Model) finishSession() error {
	elapsed, err := m.sess.Elapsed()
	if err != nil {
		return fmt.Errorf("failed to read session clock: %w", err)
	}
	report, err := stats.Compute(m.sess.Snapshot(), elapsed)
	if errors.Is(err, stats.ErrDegenerateTiming) {
		// Too short to measure: discard and go again.
		if rerr := m.startSession(); rerr != nil {
			return rerr
		}
		m.notice = "test too short to measure, try again"
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to compute report: %w", err)
	}
	m.report = report
	m.lastWPM = report.WPM
	m.lastAcc = report.Accuracy
	m.hasLast = true
	m.view = viewResults
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.view == viewResults {
		return m.viewResults()
	}
	return m.viewTyping()
}

func (m *Model) viewTyping() string {
	snap := m.sess.Snapshot()
	if len(snap.Target) == 0 {
		return ""
	}
	styledRunes := buildStyledRunes(snap)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter(snap)
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewResults() string {
	lines := []string{
		resultStyle.Render(fmt.Sprintf("Took %.0fs for %d words", m.report.Elapsed.Seconds(), m.words)),
		accuracyStyle.Render(fmt.Sprintf("Accuracy: %.1f%%", m.report.Accuracy*100)),
		resultStyle.Render(fmt.Sprintf("Mistakes: %d out of %d characters", m.report.IncorrectChars, m.report.TotalChars)),
		resultStyle.Render("Speed: ") + wpmStyle.Render(fmt.Sprintf("%.1f wpm", m.report.WPM)) + resultStyle.Render(" (words per minute)"),
	}
	content := strings.Join(lines, "\n")
	footer := footerStyle.Render("ctrl-r to go again  ctrl-c to quit")
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	bodyHeight := m.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter(snap session.Snapshot) string {
	if len(snap.Target) == 0 {
		return ""
	}
	progress := int(float64(snap.Cursor) / float64(len(snap.Target)) * 100)
	segments := []string{fmt.Sprintf("Progress %d%%", progress)}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc*100))
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if m.notice != "" {
		footer = noticeStyle.Render(m.notice) + "  " + footer
	}
	return footer
}
