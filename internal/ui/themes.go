// Package ui provides theme and color support for the application's user interface.
// It defines color schemes and provides ANSI escape code functions for consistent
// styling across the CLI output.
package ui

import (
	"os"
	"sync"

	"golang.org/x/term"
)

// Theme defines a color scheme for UI output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for less prominent elements such as move numbers.
	Secondary string
	// Success indicates completed operations.
	Success string
	// Warning is used for caution messages.
	Warning string
	// Error indicates failures.
	Error string
	// Bold is the escape code for bold text.
	Bold string
	// Reset clears all formatting.
	Reset string
	// Poles is the palette pole labels cycle through.
	Poles []string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Bold:      "\033[1m",
		Reset:     "\033[0m",
		Poles: []string{
			"\033[38;5;214m", // Orange
			"\033[38;5;81m",  // Cyan
			"\033[38;5;141m", // Purple
		},
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Brown
		Error:     "\033[38;5;124m", // Dark red
		Bold:      "\033[1m",
		Reset:     "\033[0m",
		Poles: []string{
			"\033[38;5;166m", // Dark orange
			"\033[38;5;31m",  // Teal
			"\033[38;5;54m",  // Dark purple
		},
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set, --no-color is given, or stdout is not a terminal.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex

	// stdoutIsTerminal is replaced in tests.
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name.
// Valid names are: "dark", "light", "none". Unknown names default to dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme selects the theme for this run. Colors are disabled when noColor
// is true, when the NO_COLOR environment variable is present
// (https://no-color.org/), or when stdout is not a terminal.
//
// Parameters:
//   - noColor: If true, disables all color output regardless of environment.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	if !stdoutIsTerminal() {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
