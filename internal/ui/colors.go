package ui

// Color functions return ANSI escape codes from the current theme.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color from the current theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorGrey returns the secondary color from the current theme.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// PoleColor returns the color for a pole label. The same label always gets
// the same color within a theme; "" when colors are disabled.
func PoleColor(label byte) string {
	palette := GetCurrentTheme().Poles
	if len(palette) == 0 {
		return ""
	}
	return palette[int(label)%len(palette)]
}

// Colors adapts the current theme to apperrors.ColorProvider.
type Colors struct{}

// Yellow returns the warning color.
func (Colors) Yellow() string { return ColorYellow() }

// Reset returns the reset escape code.
func (Colors) Reset() string { return ColorReset() }
