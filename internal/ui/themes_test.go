package ui

import (
	"os"
	"testing"
)

// withTerminal forces the terminal check for the duration of a test.
func withTerminal(t *testing.T, isTerm bool) {
	t.Helper()
	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return isTerm }
	t.Cleanup(func() { stdoutIsTerminal = orig })
}

// unsetNoColor removes NO_COLOR and restores it when the test ends.
func unsetNoColor(t *testing.T) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
}

func TestSetTheme(t *testing.T) {
	originalTheme := GetCurrentTheme()
	defer SetCurrentTheme(originalTheme)

	testCases := []struct {
		themeName string
		want      string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"unknown", "dark"},
		{"", "dark"},
	}
	for _, tc := range testCases {
		SetTheme(tc.themeName)
		if got := GetCurrentTheme().Name; got != tc.want {
			t.Errorf("SetTheme(%q): got theme %q, want %q", tc.themeName, got, tc.want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	originalTheme := GetCurrentTheme()
	defer SetCurrentTheme(originalTheme)

	t.Run("flag disables colors", func(t *testing.T) {
		withTerminal(t, true)
		unsetNoColor(t)
		InitTheme(true)
		if got := GetCurrentTheme().Name; got != "none" {
			t.Errorf("InitTheme(true) = %q, want none", got)
		}
	})

	t.Run("NO_COLOR disables colors", func(t *testing.T) {
		withTerminal(t, true)
		t.Setenv("NO_COLOR", "1")
		InitTheme(false)
		if got := GetCurrentTheme().Name; got != "none" {
			t.Errorf("InitTheme with NO_COLOR = %q, want none", got)
		}
	})

	t.Run("non-terminal disables colors", func(t *testing.T) {
		withTerminal(t, false)
		unsetNoColor(t)
		InitTheme(false)
		if got := GetCurrentTheme().Name; got != "none" {
			t.Errorf("InitTheme on a pipe = %q, want none", got)
		}
	})

	t.Run("terminal gets dark theme", func(t *testing.T) {
		withTerminal(t, true)
		unsetNoColor(t)
		InitTheme(false)
		if got := GetCurrentTheme().Name; got != "dark" {
			t.Errorf("InitTheme on a terminal = %q, want dark", got)
		}
	})
}

func TestPoleColor(t *testing.T) {
	originalTheme := GetCurrentTheme()
	defer SetCurrentTheme(originalTheme)

	SetCurrentTheme(DarkTheme)
	a, b, c := PoleColor('A'), PoleColor('B'), PoleColor('C')
	if a == "" || a == b || b == c || a == c {
		t.Errorf("poles A, B, C should get three distinct colors: %q %q %q", a, b, c)
	}
	if PoleColor('A') != a {
		t.Error("PoleColor should be stable for a label")
	}

	SetCurrentTheme(NoColorTheme)
	if PoleColor('A') != "" || ColorReset() != "" {
		t.Error("NoColorTheme should produce no escape codes")
	}
	if (Colors{}).Yellow() != "" {
		t.Error("Colors should follow the current theme")
	}
}
