package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"bagextract/internal/batch"
)

func TestModelAppliesUpdates(t *testing.T) {
	m := NewModel("both", make(chan batch.Update), nil)

	next, cmd := m.Update(updateMsg(batch.Update{Percent: 42, Message: "Copying a.bag", Index: 1, Total: 2}))
	if cmd == nil {
		t.Fatal("expected a command to keep listening")
	}
	view := next.View()
	for _, want := range []string{"42% complete", "Copying a.bag", "File: 1/2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelQuitsOnFinalUpdate(t *testing.T) {
	m := NewModel("both", make(chan batch.Update), nil)

	next, cmd := m.Update(updateMsg(batch.Update{Percent: 100, Done: true, State: batch.StateCompleted}))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if next.View() != "" {
		t.Errorf("view after quit: %q", next.View())
	}
	if got := next.(Model).Last(); !got.Done {
		t.Errorf("last update not recorded: %+v", got)
	}
}

func TestModelCancelKeyCallsCancelOnce(t *testing.T) {
	calls := 0
	m := NewModel("both", make(chan batch.Update), func() { calls++ })

	var next tea.Model = m
	for i := 0; i < 3; i++ {
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	}
	if calls != 1 {
		t.Errorf("cancel called %d times, want 1", calls)
	}
	if !strings.Contains(next.View(), "Canceling") {
		t.Errorf("view does not show canceling state:\n%s", next.View())
	}
}

func TestListenForUpdatesClosedChannel(t *testing.T) {
	ch := make(chan batch.Update)
	close(ch)
	if _, ok := listenForUpdates(ch)().(doneMsg); !ok {
		t.Fatal("expected doneMsg on closed channel")
	}
}

func TestRenderBar(t *testing.T) {
	if got := renderBar(10, 0.5); got != "[=====     ]" {
		t.Errorf("renderBar = %q", got)
	}
	if got := renderBar(4, 2); got != "[====]" {
		t.Errorf("renderBar overflow = %q", got)
	}
}
