package tui

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tipo/internal/selector"
	"github.com/verte-zerg/tipo/internal/session"
)

func newTestModel(t *testing.T, corpus []string, words int) *Model {
	t.Helper()
	sel := selector.New(rand.New(rand.NewSource(1)))
	m, err := NewModel(corpus, words, sel)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func send(m *Model, msg tea.Msg) *Model {
	next, _ := m.Update(msg)
	return next.(*Model)
}

func typeRune(m *Model, r rune) *Model {
	if r == ' ' {
		return send(m, tea.KeyMsg{Type: tea.KeySpace})
	}
	return send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestTypingAdvancesSession(t *testing.T) {
	m := newTestModel(t, []string{"ab"}, 1)
	m = typeRune(m, 'a')
	snap := m.sess.Snapshot()
	if snap.Cursor != 1 || snap.Outcomes[0].Status != session.Correct {
		t.Fatalf("unexpected session state after keypress: %+v", snap)
	}
}

func TestCompletionShowsResults(t *testing.T) {
	m := newTestModel(t, []string{"ab"}, 1)
	m = typeRune(m, 'a')
	m = typeRune(m, 'x')
	if m.view != viewResults {
		t.Fatalf("expected results view after completion")
	}
	if m.report.TotalChars != 2 || m.report.CorrectChars != 1 || m.report.IncorrectChars != 1 {
		t.Fatalf("unexpected report: %+v", m.report)
	}
	out := m.View()
	if !strings.Contains(out, "Accuracy: 50.0%") {
		t.Fatalf("results view missing accuracy: %s", out)
	}
	if !strings.Contains(out, "Mistakes: 1 out of 2 characters") {
		t.Fatalf("results view missing mistakes: %s", out)
	}
	if !strings.Contains(out, "wpm") {
		t.Fatalf("results view missing speed: %s", out)
	}
}

func TestTypingIgnoredOnResultsView(t *testing.T) {
	m := newTestModel(t, []string{"ab"}, 1)
	m = typeRune(m, 'a')
	m = typeRune(m, 'b')
	if m.view != viewResults {
		t.Fatalf("expected results view")
	}
	m = typeRune(m, 'z')
	if m.view != viewResults {
		t.Fatalf("plain keys must not leave the results view")
	}
}

func TestRestartBeginsFreshSession(t *testing.T) {
	m := newTestModel(t, []string{"ab"}, 1)
	m = typeRune(m, 'a')
	m = typeRune(m, 'b')
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.view != viewTyping {
		t.Fatalf("expected typing view after restart")
	}
	snap := m.sess.Snapshot()
	if snap.Cursor != 0 || snap.Phase != session.PhaseNotStarted {
		t.Fatalf("expected fresh session after restart: %+v", snap)
	}
	if !m.hasLast {
		t.Fatalf("last result should survive a restart")
	}
}

func TestBackspaceKeyErases(t *testing.T) {
	m := newTestModel(t, []string{"ab"}, 1)
	m = typeRune(m, 'x')
	m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	snap := m.sess.Snapshot()
	if snap.Cursor != 0 || snap.Outcomes[0].Status != session.Untyped {
		t.Fatalf("backspace key did not erase: %+v", snap)
	}
}

func TestCtrlWErasesThroughWord(t *testing.T) {
	m := newTestModel(t, []string{"ab"}, 2) // target "ab ab"
	for _, r := range "ab a" {
		m = typeRune(m, r)
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlW})
	snap := m.sess.Snapshot()
	// The partial second word goes; the space before it stays.
	if snap.Cursor != 3 {
		t.Fatalf("expected cursor 3 after ctrl-w, got %d", snap.Cursor)
	}
	if snap.Outcomes[3].Status != session.Untyped {
		t.Fatalf("expected erased position after ctrl-w: %+v", snap.Outcomes[3])
	}
	// Ctrl-w right after a space is a no-op.
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlW})
	if got := m.sess.Snapshot().Cursor; got != 3 {
		t.Fatalf("expected ctrl-w after space to be a no-op, cursor %d", got)
	}
}

func TestDegenerateTimingRestartsWithNotice(t *testing.T) {
	sel := selector.New(rand.New(rand.NewSource(1)))
	// A frozen clock stamps identical start and end times, so the
	// finished session elapses zero time.
	frozen := time.Unix(100, 0)
	m, err := NewModelWithClock([]string{"ab"}, 1, sel, func() time.Time { return frozen })
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m = typeRune(m, 'a')
	m = typeRune(m, 'b')

	if m.view != viewTyping {
		t.Fatalf("zero-elapsed session must not reach the results view")
	}
	if m.notice == "" {
		t.Fatalf("expected a try-again notice after zero-elapsed session")
	}
	if !strings.Contains(m.renderFooter(m.sess.Snapshot()), m.notice) {
		t.Fatalf("footer should show the notice")
	}
	snap := m.sess.Snapshot()
	if snap.Cursor != 0 || snap.Phase != session.PhaseNotStarted {
		t.Fatalf("expected a fresh session after discard: %+v", snap)
	}
	if m.hasLast {
		t.Fatalf("a discarded session must not record a last result")
	}
	// The next keystroke clears the notice through the usual restart path.
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.notice != "" {
		t.Fatalf("restart should clear the notice, got %q", m.notice)
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m := newTestModel(t, []string{"abcd"}, 1)
	m = typeRune(m, 'a')
	m = typeRune(m, 'b')
	m.hasLast = true
	m.lastWPM = 72.4
	m.lastAcc = 0.978
	out := m.renderFooter(m.sess.Snapshot())
	if out == "" {
		t.Fatalf("expected footer output")
	}
	for _, want := range []string{"Progress 50%", "Last 72.4 WPM", "97.8%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}
