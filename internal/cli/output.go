// Package cli provides the command-line presentation of move sequences:
// streaming encoders, file output, progress display and summaries.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/agbru/hanoi/internal/config"
	apperrors "github.com/agbru/hanoi/internal/errors"
	"github.com/agbru/hanoi/internal/hanoi"
	"github.com/agbru/hanoi/internal/ui"
	"github.com/agbru/hanoi/pkg/models"
)

// ctxCheckInterval is how many moves are written between context checks.
const ctxCheckInterval = 1024

// StreamOptions controls how a move stream is rendered.
type StreamOptions struct {
	// Format is one of config.FormatText, config.FormatJSON, config.FormatNDJSON.
	Format string
	// Numbered prefixes text moves with their 1-based index.
	Numbered bool
	// Colored applies the current theme's pole colors to text moves.
	Colored bool
}

// MoveObserver is notified after each move is written, with the running count.
type MoveObserver func(emitted uint64)

// moveEncoder renders one move stream in a given format.
type moveEncoder interface {
	begin() error
	encode(index uint64, m hanoi.Move) error
	end(count uint64) error
}

func newMoveEncoder(w *bufio.Writer, opts StreamOptions) (moveEncoder, error) {
	switch opts.Format {
	case config.FormatText, "":
		return &textEncoder{w: w, numbered: opts.Numbered, colored: opts.Colored}, nil
	case config.FormatNDJSON:
		return &ndjsonEncoder{enc: json.NewEncoder(w)}, nil
	case config.FormatJSON:
		return &jsonArrayEncoder{w: w}, nil
	default:
		return nil, apperrors.NewConfigError("unrecognized format: '%s'", opts.Format)
	}
}

// StreamMoves drains src into w, one move at a time. Output is buffered but
// never accumulated: memory use does not depend on the number of moves.
//
// Parameters:
//   - ctx: Checked periodically; cancellation stops the stream.
//   - src: The move source to drain.
//   - w: The destination writer.
//   - opts: Rendering options.
//   - observe: Optional callback invoked after each move.
//
// Returns:
//   - uint64: The number of moves written.
//   - error: A GenerationError wrapping the cause if the stream stopped early.
func StreamMoves(ctx context.Context, src hanoi.MoveSource, w io.Writer, opts StreamOptions, observe MoveObserver) (uint64, error) {
	bw := bufio.NewWriter(w)
	enc, err := newMoveEncoder(bw, opts)
	if err != nil {
		return 0, err
	}
	if err := enc.begin(); err != nil {
		return 0, apperrors.NewGenerationError(0, err)
	}

	var emitted uint64
	for src.HasMore() {
		if emitted%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				bw.Flush()
				return emitted, apperrors.NewGenerationError(emitted, err)
			}
		}
		m, err := src.Next()
		if err != nil {
			bw.Flush()
			return emitted, apperrors.NewGenerationError(emitted, err)
		}
		if err := enc.encode(emitted+1, m); err != nil {
			return emitted, apperrors.NewGenerationError(emitted, err)
		}
		emitted++
		if observe != nil {
			observe(emitted)
		}
	}

	if err := enc.end(emitted); err != nil {
		return emitted, apperrors.NewGenerationError(emitted, err)
	}
	if err := bw.Flush(); err != nil {
		return emitted, apperrors.NewGenerationError(emitted, err)
	}
	return emitted, nil
}

// NewMoveRecord converts a move to its wire representation.
func NewMoveRecord(index uint64, m hanoi.Move) models.MoveRecord {
	return models.MoveRecord{
		Index: index,
		From:  m.From.String(),
		To:    m.To.String(),
		Move:  m.String(),
	}
}

type textEncoder struct {
	w        *bufio.Writer
	numbered bool
	colored  bool
}

func (e *textEncoder) begin() error { return nil }

func (e *textEncoder) encode(index uint64, m hanoi.Move) error {
	if e.numbered {
		if e.colored {
			e.w.WriteString(ui.ColorGrey())
		}
		e.w.WriteString(strconv.FormatUint(index, 10))
		e.w.WriteString(". ")
		if e.colored {
			e.w.WriteString(ui.ColorReset())
		}
	}
	if e.colored {
		fmt.Fprintf(e.w, "%s%s%s->%s%s%s",
			ui.PoleColor(byte(m.From)), m.From, ui.ColorReset(),
			ui.PoleColor(byte(m.To)), m.To, ui.ColorReset())
	} else {
		e.w.WriteString(m.String())
	}
	return e.w.WriteByte('\n')
}

func (e *textEncoder) end(uint64) error { return nil }

type ndjsonEncoder struct {
	enc *json.Encoder
}

func (e *ndjsonEncoder) begin() error { return nil }

func (e *ndjsonEncoder) encode(index uint64, m hanoi.Move) error {
	return e.enc.Encode(NewMoveRecord(index, m))
}

func (e *ndjsonEncoder) end(uint64) error { return nil }

// jsonArrayEncoder writes a JSON array incrementally, one element per line.
type jsonArrayEncoder struct {
	w *bufio.Writer
}

func (e *jsonArrayEncoder) begin() error {
	_, err := e.w.WriteString("[")
	return err
}

func (e *jsonArrayEncoder) encode(index uint64, m hanoi.Move) error {
	data, err := json.Marshal(NewMoveRecord(index, m))
	if err != nil {
		return err
	}
	if index == 1 {
		e.w.WriteString("\n  ")
	} else {
		e.w.WriteString(",\n  ")
	}
	_, err = e.w.Write(data)
	return err
}

func (e *jsonArrayEncoder) end(count uint64) error {
	if count == 0 {
		_, err := e.w.WriteString("]\n")
		return err
	}
	_, err := e.w.WriteString("\n]\n")
	return err
}

// FileHeader describes the run recorded at the top of a text output file.
type FileHeader struct {
	Height int
	From   hanoi.Pole
	To     hanoi.Pole
	Via    hanoi.Pole
}

// WriteMovesToFile streams src into the file at path, creating parent
// directories as needed. Text output starts with a commented header; JSON
// formats are written bare so the file stays valid JSON. Colors are never
// written to files.
//
// Returns:
//   - uint64: The number of moves written.
//   - error: An error if the file cannot be created or the stream fails.
func WriteMovesToFile(ctx context.Context, src hanoi.MoveSource, path string, header FileHeader, opts StreamOptions, observe MoveObserver) (uint64, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	opts.Colored = false
	if opts.Format == config.FormatText || opts.Format == "" {
		fmt.Fprintf(file, "# Towers of Hanoi\n")
		fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
		fmt.Fprintf(file, "# Height: %d\n", header.Height)
		fmt.Fprintf(file, "# Poles: %s->%s via %s\n", header.From, header.To, header.Via)
		fmt.Fprintf(file, "# Moves: %s\n\n", hanoi.TotalMoves(header.Height))
	}

	emitted, err := StreamMoves(ctx, src, file, opts, observe)
	if err != nil {
		return emitted, err
	}
	if err := file.Close(); err != nil {
		return emitted, fmt.Errorf("failed to close output file: %w", err)
	}
	return emitted, nil
}
