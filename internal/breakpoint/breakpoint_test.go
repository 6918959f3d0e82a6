package breakpoint

import (
	"strings"
	"testing"
	"time"
)

func TestNew_ClampsNegative(t *testing.T) {
	bp := New(-3*time.Second, "intro")

	if bp.Timepoint != 0 {
		t.Errorf("Timepoint = %v, want 0", bp.Timepoint)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Breakpoint
		want int
	}{
		{"earlier first", New(time.Second, "z"), New(2*time.Second, "a"), -1},
		{"later second", New(3*time.Second, "a"), New(2*time.Second, "a"), 1},
		{"same time by hint", New(time.Second, "a"), New(time.Second, "b"), -1},
		{"equal", New(time.Second, "a"), New(time.Second, "a"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatTimepoint(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{65 * time.Second, "1:05"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{-time.Second, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatTimepoint(tt.d); got != tt.want {
				t.Errorf("FormatTimepoint(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestBreakpoint_String(t *testing.T) {
	if got := New(75*time.Second, "bridge").String(); got != "1:15 bridge" {
		t.Errorf("String() = %q, want %q", got, "1:15 bridge")
	}
	if got := New(5*time.Second, "").String(); got != "0:05" {
		t.Errorf("String() = %q, want %q", got, "0:05")
	}
}

func TestTrimHint(t *testing.T) {
	long := strings.Repeat("é", 70)

	if got := TrimHint("  chorus  ", 0); got != "chorus" {
		t.Errorf("TrimHint() = %q, want %q", got, "chorus")
	}
	if got := []rune(TrimHint(long, 0)); len(got) != DefaultHintLimit {
		t.Errorf("len(TrimHint()) = %d runes, want %d", len(got), DefaultHintLimit)
	}
	if got := TrimHint("abcdef", 3); got != "abc" {
		t.Errorf("TrimHint() = %q, want %q", got, "abc")
	}
}
