package cli

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/agbru/hanoi/internal/hanoi"
	"github.com/agbru/hanoi/internal/ui"
	"github.com/briandowns/spinner"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
	// progressUpdateEvery is how many moves pass between progress updates.
	progressUpdateEvery = 4096
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Spinner is an interface that abstracts the behavior of a terminal spinner,
// so that progress display can be tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix takes the spinner's lock, since the animation runs in its own
// goroutine.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// Progress displays a spinner with a progress bar while a sequence is being
// written. Observe is meant to be passed as the MoveObserver of StreamMoves.
type Progress struct {
	spinner Spinner
	out     io.Writer
	total   float64
	last    uint64
}

// NewProgress creates a progress display for a sequence of total moves.
func NewProgress(out io.Writer, total *big.Int) *Progress {
	t, _ := new(big.Float).SetInt(total).Float64()
	return &Progress{
		spinner: newSpinner(spinner.WithWriter(out)),
		out:     out,
		total:   t,
	}
}

// Start begins the animation.
func (p *Progress) Start() {
	p.spinner.UpdateSuffix(" " + progressLine(0, 0))
	p.spinner.Start()
}

// Observe records that emitted moves have been written. The display is
// refreshed every few thousand moves.
func (p *Progress) Observe(emitted uint64) {
	p.last = emitted
	if emitted%progressUpdateEvery != 0 {
		return
	}
	p.spinner.UpdateSuffix(" " + progressLine(emitted, p.fraction(emitted)))
}

// Stop halts the animation and prints the final progress line.
func (p *Progress) Stop() {
	p.spinner.Stop()
	fmt.Fprintln(p.out, progressLine(p.last, p.fraction(p.last)))
}

func (p *Progress) fraction(emitted uint64) float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(emitted) / p.total
}

func progressLine(emitted uint64, fraction float64) string {
	return fmt.Sprintf("Progress: %6.2f%% [%s] %d moves", fraction*100, progressBar(fraction, ProgressBarWidth), emitted)
}

// progressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// PrintHeader describes the run before the moves are written.
func PrintHeader(out io.Writer, height int, from, to, via hanoi.Pole) {
	fmt.Fprintf(out, "%sTowers of Hanoi%s: %s%d%s discs from %s to %s via %s (%s%s%s moves)\n",
		ui.ColorBold(), ui.ColorReset(),
		ui.ColorBlue(), height, ui.ColorReset(),
		colorPole(from), colorPole(to), colorPole(via),
		ui.ColorBlue(), formatNumberString(hanoi.TotalMoves(height).String()), ui.ColorReset())
}

// PrintSummary reports the number of moves written and the elapsed time.
func PrintSummary(out io.Writer, emitted uint64, duration time.Duration, outputFile string) {
	fmt.Fprintf(out, "%s✓ %s moves%s in %s%s%s",
		ui.ColorGreen(), formatNumberString(fmt.Sprintf("%d", emitted)), ui.ColorReset(),
		ui.ColorYellow(), FormatExecutionDuration(duration), ui.ColorReset())
	if outputFile != "" {
		fmt.Fprintf(out, ", saved to %s%s%s", ui.ColorBlue(), outputFile, ui.ColorReset())
	}
	fmt.Fprintln(out)
}

func colorPole(p hanoi.Pole) string {
	return ui.PoleColor(byte(p)) + p.String() + ui.ColorReset()
}

// formatNumberString inserts thousand separators into a numeric string.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])
	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
