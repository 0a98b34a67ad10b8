package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/hanoi/internal/config"
	apperrors "github.com/agbru/hanoi/internal/errors"
	"github.com/agbru/hanoi/internal/hanoi"
	"github.com/agbru/hanoi/internal/logging"
	"github.com/agbru/hanoi/internal/testutil"
)

// newTestApp builds an application around cfg with colors disabled.
func newTestApp(cfg config.AppConfig, errWriter *bytes.Buffer) *Application {
	cfg.NoColor = true
	if cfg.Format == "" {
		cfg.Format = config.FormatText
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = time.Minute
	}
	return &Application{
		Config:    cfg,
		ErrWriter: errWriter,
		Logger:    logging.NewNopLogger(),
	}
}

func defaultConfig(height int) config.AppConfig {
	return config.AppConfig{Height: height, From: hanoi.A, To: hanoi.C, Via: hanoi.B}
}

// TestNew tests the New function for creating Application instances.
func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("Valid args create application", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		app, err := New([]string{"hanoi", "-n", "5", "-log-level", "debug"}, &errBuf)
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		if app.Config.Height != 5 {
			t.Errorf("Expected Height=5, got %d", app.Config.Height)
		}
		if app.Logger == nil {
			t.Error("Logger should not be nil")
		}
	})

	t.Run("Empty args use defaults", func(t *testing.T) {
		t.Parallel()
		app, err := New(nil, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		if app.Config.Height != config.DefaultHeight {
			t.Errorf("Expected default height, got %d", app.Config.Height)
		}
	})

	t.Run("Invalid args return error", func(t *testing.T) {
		t.Parallel()
		app, err := New([]string{"hanoi", "-invalid-flag"}, &bytes.Buffer{})
		if err == nil {
			t.Error("New() should return error for invalid args")
		}
		if app != nil {
			t.Error("New() should return nil application on error")
		}
	})

	t.Run("Help flag returns error", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"hanoi", "-h"}, &bytes.Buffer{})
		if !IsHelpError(err) {
			t.Errorf("Expected help error, got %v", err)
		}
	})
}

func TestApplicationRun(t *testing.T) {
	t.Parallel()

	t.Run("Text to stdout", func(t *testing.T) {
		t.Parallel()
		var outBuf, errBuf bytes.Buffer
		app := newTestApp(defaultConfig(3), &errBuf)

		if exitCode := app.Run(context.Background(), &outBuf); exitCode != apperrors.ExitSuccess {
			t.Fatalf("Expected exit code %d, got %d: %s", apperrors.ExitSuccess, exitCode, errBuf.String())
		}
		want := "A->C\nA->B\nC->B\nA->C\nB->A\nB->C\nA->C\n"
		if outBuf.String() != want {
			t.Errorf("stdout = %q; want %q", outBuf.String(), want)
		}
		status := testutil.StripAnsiCodes(errBuf.String())
		if !strings.Contains(status, "Towers of Hanoi: 3 discs from A to C via B (7 moves)") {
			t.Errorf("missing header in %q", status)
		}
		if !strings.Contains(status, "✓ 7 moves") {
			t.Errorf("missing summary in %q", status)
		}
	})

	t.Run("Quiet NDJSON", func(t *testing.T) {
		t.Parallel()
		var outBuf, errBuf bytes.Buffer
		cfg := defaultConfig(4)
		cfg.Format = config.FormatNDJSON
		cfg.Quiet = true
		app := newTestApp(cfg, &errBuf)

		if exitCode := app.Run(context.Background(), &outBuf); exitCode != apperrors.ExitSuccess {
			t.Fatalf("Expected exit code %d, got %d", apperrors.ExitSuccess, exitCode)
		}
		if n := strings.Count(outBuf.String(), "\n"); n != 15 {
			t.Errorf("Expected 15 NDJSON lines, got %d", n)
		}
		if errBuf.Len() != 0 {
			t.Errorf("Quiet mode should not write status output, got %q", errBuf.String())
		}
	})

	t.Run("File output", func(t *testing.T) {
		t.Parallel()
		var outBuf, errBuf bytes.Buffer
		cfg := defaultConfig(5)
		cfg.Numbered = true
		cfg.OutputFile = filepath.Join(t.TempDir(), "out", "moves.txt")
		app := newTestApp(cfg, &errBuf)

		if exitCode := app.Run(context.Background(), &outBuf); exitCode != apperrors.ExitSuccess {
			t.Fatalf("Expected exit code %d, got %d: %s", apperrors.ExitSuccess, exitCode, errBuf.String())
		}
		if outBuf.Len() != 0 {
			t.Errorf("stdout should stay empty with an output file, got %q", outBuf.String())
		}
		data, err := os.ReadFile(cfg.OutputFile)
		if err != nil {
			t.Fatalf("failed to read output file: %v", err)
		}
		if !strings.Contains(string(data), "31. A->C") {
			t.Errorf("output file missing the last move:\n%s", data)
		}
		status := testutil.StripAnsiCodes(errBuf.String())
		if !strings.Contains(status, "Progress:") || !strings.Contains(status, "saved to "+cfg.OutputFile) {
			t.Errorf("unexpected status output %q", status)
		}
	})

	t.Run("Unwritable output file", func(t *testing.T) {
		t.Parallel()
		blocker := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(blocker, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		var errBuf bytes.Buffer
		cfg := defaultConfig(3)
		cfg.Quiet = true
		cfg.OutputFile = filepath.Join(blocker, "moves.txt")
		app := newTestApp(cfg, &errBuf)

		if exitCode := app.Run(context.Background(), &bytes.Buffer{}); exitCode != apperrors.ExitErrorGeneric {
			t.Errorf("Expected exit code %d, got %d", apperrors.ExitErrorGeneric, exitCode)
		}
		if !strings.Contains(errBuf.String(), "Status: Failure") {
			t.Errorf("unexpected status output %q", errBuf.String())
		}
	})

	t.Run("Invalid height", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		app := newTestApp(defaultConfig(0), &errBuf)

		if exitCode := app.Run(context.Background(), &bytes.Buffer{}); exitCode != apperrors.ExitErrorConfig {
			t.Errorf("Expected exit code %d, got %d", apperrors.ExitErrorConfig, exitCode)
		}
		if !strings.Contains(errBuf.String(), "Invalid input") {
			t.Errorf("unexpected status output %q", errBuf.String())
		}
	})

	t.Run("Canceled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var errBuf bytes.Buffer
		app := newTestApp(defaultConfig(10), &errBuf)

		if exitCode := app.Run(ctx, &bytes.Buffer{}); exitCode != apperrors.ExitErrorCanceled {
			t.Errorf("Expected exit code %d, got %d", apperrors.ExitErrorCanceled, exitCode)
		}
		if !strings.Contains(errBuf.String(), "Status: Canceled") {
			t.Errorf("unexpected status output %q", errBuf.String())
		}
	})

	t.Run("Timeout failure", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		cfg := defaultConfig(30)
		cfg.Quiet = true
		cfg.Timeout = time.Millisecond
		app := newTestApp(cfg, &errBuf)

		if exitCode := app.Run(context.Background(), io.Discard); exitCode != apperrors.ExitErrorTimeout {
			t.Errorf("Expected exit code %d, got %d", apperrors.ExitErrorTimeout, exitCode)
		}
		if !strings.Contains(errBuf.String(), "Timeout") {
			t.Errorf("unexpected status output %q", errBuf.String())
		}
	})
}

func TestRunServer(t *testing.T) {
	t.Parallel()

	t.Run("Server stops with its context", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		app := newTestApp(config.AppConfig{ServerMode: true, Port: "0", MaxServerHeight: 10}, &errBuf)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan int, 1)
		go func() { done <- app.Run(ctx, &bytes.Buffer{}) }()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case exitCode := <-done:
			if exitCode != apperrors.ExitSuccess {
				t.Errorf("Expected exit code %d, got %d", apperrors.ExitSuccess, exitCode)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	})

	t.Run("Listen failure", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		app := newTestApp(config.AppConfig{ServerMode: true, Port: "-1"}, &errBuf)

		if exitCode := app.Run(context.Background(), &bytes.Buffer{}); exitCode != apperrors.ExitErrorGeneric {
			t.Errorf("Expected exit code %d, got %d", apperrors.ExitErrorGeneric, exitCode)
		}
		if !strings.Contains(errBuf.String(), "Server error:") {
			t.Errorf("unexpected error output %q", errBuf.String())
		}
	})
}

func TestIsHelpError(t *testing.T) {
	t.Parallel()
	if IsHelpError(nil) {
		t.Error("nil is not a help error")
	}
	if IsHelpError(apperrors.NewConfigError("bad")) {
		t.Error("a config error is not a help error")
	}
}

func TestSetupLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("Timeout", func(t *testing.T) {
		t.Parallel()
		ctx, cancels := SetupLifecycle(context.Background(), 10*time.Millisecond)
		defer cancels.Cleanup()

		select {
		case <-ctx.Done():
			if ctx.Err() != context.DeadlineExceeded {
				t.Errorf("Expected DeadlineExceeded, got %v", ctx.Err())
			}
		case <-time.After(5 * time.Second):
			t.Fatal("context was not canceled by the timeout")
		}
	})

	t.Run("Cleanup cancels", func(t *testing.T) {
		t.Parallel()
		ctx, cancels := SetupLifecycle(context.Background(), time.Hour)
		cancels.Cleanup()
		if ctx.Err() == nil {
			t.Error("Cleanup should cancel the context")
		}
		// A second call must be harmless.
		cancels.Cleanup()
	})

	t.Run("Nil funcs", func(t *testing.T) {
		t.Parallel()
		(&CancelFuncs{}).Cleanup()
	})
}
