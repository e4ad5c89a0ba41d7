package ui

import (
	"errors"
	"testing"

	"github.com/ashwch/powermenu/internal/action"
	"github.com/ashwch/powermenu/internal/config"
	"github.com/ashwch/powermenu/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

type recordingExecutor struct {
	err   error
	calls int
}

func (r *recordingExecutor) Execute(config.ActionConfig) error {
	r.calls++
	return r.err
}

type staleMenu struct{}

func (staleMenu) List(string) []session.Candidate {
	return []session.Candidate{{Title: "Stale", ID: session.ID(99)}}
}

func (staleMenu) Select(id session.ID) (session.Outcome, error) {
	return session.Outcome{}, session.ErrUnknownCandidate
}

func sendKey(t *testing.T, m menuModel, msg tea.KeyMsg) (menuModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(menuModel)
	if !ok {
		t.Fatalf("expected menuModel")
	}
	return out, cmd
}

func typeText(t *testing.T, m menuModel, text string) menuModel {
	t.Helper()
	out, _ := sendKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return out
}

func selectedID(t *testing.T, m menuModel) session.ID {
	t.Helper()
	item, ok := m.list.SelectedItem().(menuItem)
	if !ok {
		t.Fatalf("expected a selected item")
	}
	return item.candidate.ID
}

func expectQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestMenuModelListsAllActions(t *testing.T) {
	m := newMenuModel(session.New(config.Default(), &recordingExecutor{}))
	if got := len(m.list.Items()); got != action.Count {
		t.Fatalf("expected %d items, got %d", action.Count, got)
	}
}

func TestMenuModelFiltersAsYouType(t *testing.T) {
	m := newMenuModel(session.New(config.Default(), &recordingExecutor{}))
	m = typeText(t, m, "pow")
	if got := len(m.list.Items()); got != 1 {
		t.Fatalf("expected 1 item, got %d", got)
	}
	if selectedID(t, m) != session.ActionID(action.Poweroff) {
		t.Fatalf("expected poweroff selected")
	}
}

func TestMenuModelConfirmCancelFlow(t *testing.T) {
	exec := &recordingExecutor{}
	m := newMenuModel(session.New(config.Default(), exec))

	m = typeText(t, m, "reb")
	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.input.Value() != "" {
		t.Fatalf("expected query cleared for confirmation, got %q", m.input.Value())
	}
	if got := len(m.list.Items()); got != 2 {
		t.Fatalf("expected confirm/cancel pair, got %d items", got)
	}
	if selectedID(t, m) != session.IDConfirm {
		t.Fatalf("expected confirm highlighted")
	}

	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := len(m.list.Items()); got != action.Count {
		t.Fatalf("expected full list after cancel, got %d", got)
	}
	if exec.calls != 0 {
		t.Fatalf("expected no execution after cancel")
	}

	m, cmd := sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.closed {
		t.Fatalf("expected lock to close the menu")
	}
	expectQuit(t, cmd)
	if exec.calls != 1 {
		t.Fatalf("expected one execution, got %d", exec.calls)
	}
}

func TestMenuModelShowsErrorThenCloses(t *testing.T) {
	exec := &recordingExecutor{err: errors.New("exit status 1, stderr: nope")}
	m := newMenuModel(session.New(config.Default(), exec))

	m, _ = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := len(m.list.Items()); got != 1 {
		t.Fatalf("expected error notice, got %d items", got)
	}
	if selectedID(t, m) != session.IDDismiss {
		t.Fatalf("expected dismiss candidate")
	}

	m, cmd := sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.closed {
		t.Fatalf("expected dismissal to close")
	}
	expectQuit(t, cmd)
}

func TestMenuModelStopsOnSelectError(t *testing.T) {
	m := newMenuModel(staleMenu{})
	m, cmd := sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !errors.Is(m.err, session.ErrUnknownCandidate) {
		t.Fatalf("expected unknown candidate error, got %v", m.err)
	}
	expectQuit(t, cmd)
}

func TestMenuModelEscapeQuits(t *testing.T) {
	m := newMenuModel(session.New(config.Default(), &recordingExecutor{}))
	m, cmd := sendKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.closed {
		t.Fatalf("escape should not mark a selection")
	}
	expectQuit(t, cmd)
}

func TestBubblePickerSizeStandardTerminal(t *testing.T) {
	width, height := bubblePickerSize(90, 30, 3)
	if width != 86 {
		t.Fatalf("expected width 86, got %d", width)
	}
	if height != 8 {
		t.Fatalf("expected height 8, got %d", height)
	}
}

func TestBubblePickerSizeTinyTerminalStillFits(t *testing.T) {
	width, height := bubblePickerSize(20, 5, 25)
	if width > 20 {
		t.Fatalf("expected width to fit terminal, got %d", width)
	}
	if height > 5 {
		t.Fatalf("expected height to fit terminal, got %d", height)
	}
	if width <= 0 || height <= 0 {
		t.Fatalf("expected positive dimensions, got width=%d height=%d", width, height)
	}
}

func TestHuhSelectHeightBounds(t *testing.T) {
	if got := huhSelectHeight(0); got != 4 {
		t.Fatalf("expected minimum huh height 4, got %d", got)
	}
	if got := huhSelectHeight(2); got != 4 {
		t.Fatalf("expected huh height 4 for small lists, got %d", got)
	}
	if got := huhSelectHeight(20); got != 10 {
		t.Fatalf("expected max huh height 10, got %d", got)
	}
}

func TestCandidateLabel(t *testing.T) {
	if got := candidateLabel(session.Candidate{Title: "Cancel"}); got != "Cancel" {
		t.Fatalf("unexpected label: %q", got)
	}
	got := candidateLabel(session.Candidate{Title: "Reboot", Description: "Restart the system"})
	if got != "Reboot  (Restart the system)" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestHuhOptionsFollowMenuRanking(t *testing.T) {
	s := session.New(config.Default(), &recordingExecutor{})
	candidates := s.List("reb")
	options := huhOptions(candidates)
	if len(options) != len(candidates) {
		t.Fatalf("expected %d options, got %d", len(candidates), len(options))
	}
	for idx, option := range options {
		if option.Value != candidates[idx].ID {
			t.Fatalf("option[%d] = %v, want %v", idx, option.Value, candidates[idx].ID)
		}
	}
	if options[0].Value != session.ActionID(action.Reboot) {
		t.Fatalf("expected reboot ranked first")
	}
}

func TestHasCandidate(t *testing.T) {
	s := session.New(config.Default(), &recordingExecutor{})
	if hasCandidate(s.List("zzzz"), session.ActionID(action.Lock)) {
		t.Fatalf("expected no candidate for an empty result")
	}
	if !hasCandidate(s.List(""), session.ActionID(action.Lock)) {
		t.Fatalf("expected lock in the full list")
	}
}
