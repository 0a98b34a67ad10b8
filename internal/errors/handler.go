package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider defines the interface for obtaining terminal color codes.
// This abstraction breaks the import cycle with ui.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// HandleGenerationError prints a status line for a failed move generation
// and maps the error to an exit code.
//
// Parameters:
//   - err: The error that occurred.
//   - emitted: The number of moves written before the failure.
//   - duration: How long generation ran before it failed.
//   - out: The io.Writer to which the status line is written.
//   - colors: Provider for terminal color codes (can be nil for no colors).
//
// Returns:
//   - int: The appropriate exit code for the error type.
func HandleGenerationError(err error, emitted uint64, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := fmt.Sprintf(" after %d moves", emitted)
	if duration > 0 {
		msgSuffix += fmt.Sprintf(" in %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	var validationErr ValidationError
	var configErr ConfigError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
		return ExitErrorCanceled
	case errors.As(err, &validationErr), errors.As(err, &configErr):
		fmt.Fprintf(out, "Status: Invalid input. %v\n", err)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred%s: %v\n", msgSuffix, err)
	return ExitErrorGeneric
}
