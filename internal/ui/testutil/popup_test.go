package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/bpplay/internal/ui/popup"
)

type mockPopup struct {
	content    string
	keyHistory []string
}

var _ popup.Popup = (*mockPopup)(nil)

func (m *mockPopup) Init() tea.Cmd {
	return func() tea.Msg { return "init" }
}

func (m *mockPopup) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		m.keyHistory = append(m.keyHistory, key.String())
		if key.Type == tea.KeyEnter {
			return m, func() tea.Msg { return "enter-pressed" }
		}
	}
	return m, nil
}

func (m *mockPopup) View() string { return m.content }

func (m *mockPopup) SetSize(int, int) {}

func TestNewPopupHarness_CapturesInit(t *testing.T) {
	mock := &mockPopup{content: "x"}
	h := NewPopupHarness(mock)

	if h.Popup() != mock {
		t.Error("Popup() should return the underlying popup")
	}
	if len(h.Commands()) != 1 {
		t.Errorf("expected 1 init command, got %d", len(h.Commands()))
	}
}

func TestPopupHarness_Keys(t *testing.T) {
	mock := &mockPopup{}
	h := NewPopupHarness(mock)
	h.ClearCommands()

	h.SendType("ab")
	h.SendUp()
	h.SendDown()
	h.SendEscape()
	cmd := h.SendEnter()

	want := []string{"a", "b", "up", "down", "esc", "enter"}
	if len(mock.keyHistory) != len(want) {
		t.Fatalf("keyHistory = %v, want %v", mock.keyHistory, want)
	}
	for i := range want {
		if mock.keyHistory[i] != want[i] {
			t.Errorf("keyHistory[%d] = %q, want %q", i, mock.keyHistory[i], want[i])
		}
	}
	if got := ExecuteCmd(cmd); got != "enter-pressed" {
		t.Errorf("enter command = %v, want enter-pressed", got)
	}
	if len(h.Commands()) != 1 {
		t.Errorf("Commands() = %d, want 1", len(h.Commands()))
	}
}

func TestPopupHarness_ViewAssertions(t *testing.T) {
	h := NewPopupHarness(&mockPopup{content: "\x1b[1mHello\x1b[0m World"})

	if msg := h.AssertViewContains("Hello World"); msg != "" {
		t.Error(msg)
	}
	if msg := h.AssertViewContains("Missing"); msg == "" {
		t.Error("expected failure for missing content")
	}
	if msg := h.AssertViewNotContains("Hello"); msg == "" {
		t.Error("expected failure for present content")
	}
}

func TestExecuteCmd_Nil(t *testing.T) {
	if msg := ExecuteCmd(nil); msg != nil {
		t.Errorf("ExecuteCmd(nil) = %v, want nil", msg)
	}
}
