package helpbindings

import (
	"strings"
	"testing"

	"github.com/llehouerou/bpplay/internal/ui/action"
	"github.com/llehouerou/bpplay/internal/ui/testutil"
)

func newTestHelp(height int) (*Model, *testutil.PopupHarness) {
	m := New()
	m.SetSize(80, height)
	return &m, testutil.NewPopupHarness(&m)
}

func assertClosed(t *testing.T, h *testutil.PopupHarness) {
	t.Helper()
	msg := testutil.ExecuteCmd(h.LastCommand())
	actionMsg, ok := msg.(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", msg)
	}
	if _, ok := actionMsg.Action.(Close); !ok {
		t.Fatalf("expected Close, got %T", actionMsg.Action)
	}
}

func TestHelpBindings_Close(t *testing.T) {
	for _, key := range []string{"q", "?"} {
		t.Run(key, func(t *testing.T) {
			_, h := newTestHelp(24)
			h.SendKey(key)
			assertClosed(t, h)
		})
	}

	t.Run("esc", func(t *testing.T) {
		_, h := newTestHelp(24)
		h.SendEscape()
		assertClosed(t, h)
	})
}

func TestHelpBindings_Scroll(t *testing.T) {
	m, h := newTestHelp(15) // 5 visible lines

	h.SendKey("k")
	if m.scrollOffset != 0 {
		t.Errorf("scrollOffset after k at top = %d, want 0", m.scrollOffset)
	}

	h.SendKey("j")
	h.SendDown()
	if m.scrollOffset != 2 {
		t.Errorf("scrollOffset = %d, want 2", m.scrollOffset)
	}

	for range 200 {
		h.SendDown()
	}
	if m.scrollOffset != m.maxScroll() {
		t.Errorf("scrollOffset = %d, want max %d", m.scrollOffset, m.maxScroll())
	}

	h.SendUp()
	if m.scrollOffset != m.maxScroll()-1 {
		t.Errorf("scrollOffset after up = %d, want %d", m.scrollOffset, m.maxScroll()-1)
	}
}

func TestHelpBindings_ViewListsCategoriesInOrder(t *testing.T) {
	_, h := newTestHelp(200)

	lines := strings.Split(testutil.StripANSI(h.View()), "\n")
	lineIndex := func(label string) int {
		for i, line := range lines {
			if strings.TrimSpace(line) == label {
				return i
			}
		}
		return -1
	}

	last := -1
	for _, label := range []string{"Global", "Playback", "Breakpoints", "Breakpoint List"} {
		idx := lineIndex(label)
		if idx < 0 {
			t.Fatalf("view missing category %q", label)
		}
		if idx < last {
			t.Errorf("category %q out of order", label)
		}
		last = idx
	}
	if msg := h.AssertViewContains("Add breakpoint"); msg != "" {
		t.Error(msg)
	}
	if msg := h.AssertViewContains("space"); msg != "" {
		t.Error(msg)
	}
	if msg := h.AssertViewNotContains("j/k scroll"); msg != "" {
		t.Error(msg)
	}
}

func TestHelpBindings_ScrollHintWhenOverflowing(t *testing.T) {
	_, h := newTestHelp(15)
	if msg := h.AssertViewContains("j/k scroll"); msg != "" {
		t.Error(msg)
	}
}

func TestHelpBindings_EmptyViewWhenNoSize(t *testing.T) {
	m := New()
	if v := m.View(); v != "" {
		t.Errorf("View() without size = %q, want empty", v)
	}
}
