package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/agbru/hanoi/internal/cli"
	"github.com/agbru/hanoi/internal/config"
	apperrors "github.com/agbru/hanoi/internal/errors"
	"github.com/agbru/hanoi/internal/hanoi"
	"github.com/agbru/hanoi/internal/logging"
	"github.com/agbru/hanoi/internal/server"
	"github.com/agbru/hanoi/internal/ui"
)

// Application represents the hanoi application instance.
// It encapsulates the configuration and provides methods to run
// the application in generation or server mode.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// ErrWriter receives status lines, progress and logs (typically os.Stderr).
	ErrWriter io.Writer
	// Logger is the structured logger, writing to ErrWriter at Config.LogLevel.
	Logger logging.Logger
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	// args[0] is program name, args[1:] are the actual arguments
	programName := "hanoi"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLevelLogger(errWriter, "hanoi", cfg.LogLevel)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.NewConfigError("%v", err), "invalid configuration")
	}

	return &Application{
		Config:    cfg,
		ErrWriter: errWriter,
		Logger:    logger,
	}, nil
}

// Run executes the application based on the configured mode.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer the move stream goes to when no output file is set.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	if a.Config.ServerMode {
		return a.runServer(ctx)
	}
	return a.runGenerate(ctx, out)
}

func (a *Application) logger() logging.Logger {
	if a.Logger == nil {
		return logging.NewNopLogger()
	}
	return a.Logger
}

// runServer starts the HTTP server mode and blocks until a termination
// signal arrives or ctx is done.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := SetupSignals(ctx)
	defer stopSignals()

	srv := server.NewServer(a.Config,
		server.WithLogger(a.logger()),
		server.WithMaxHeight(a.Config.MaxServerHeight))
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runGenerate streams the moves of the configured tower to out or to the
// output file. Status lines go to ErrWriter so that out carries moves only.
func (a *Application) runGenerate(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	cfg := a.Config
	log := a.logger()

	seq, err := hanoi.New(cfg.Height, cfg.From, cfg.To, cfg.Via)
	if err != nil {
		return apperrors.HandleGenerationError(err, 0, 0, a.ErrWriter, ui.Colors{})
	}

	if !cfg.Quiet {
		cli.PrintHeader(a.ErrWriter, cfg.Height, cfg.From, cfg.To, cfg.Via)
	}
	log.Debug("generation started",
		logging.Int("height", cfg.Height),
		logging.Stringer("from", cfg.From),
		logging.Stringer("to", cfg.To),
		logging.Stringer("via", cfg.Via),
		logging.String("format", cfg.Format))

	opts := cli.StreamOptions{
		Format:   cfg.Format,
		Numbered: cfg.Numbered,
		Colored:  cfg.Format == config.FormatText,
	}

	start := time.Now()
	var emitted uint64
	if cfg.OutputFile != "" {
		emitted, err = a.writeToFile(ctx, seq, opts)
	} else {
		emitted, err = cli.StreamMoves(ctx, seq, out, opts, nil)
	}
	duration := time.Since(start)

	if err != nil {
		log.Debug("generation stopped", logging.Uint64("emitted", emitted), logging.Err(err))
		return apperrors.HandleGenerationError(err, emitted, duration, a.ErrWriter, ui.Colors{})
	}

	log.Debug("generation finished",
		logging.Uint64("emitted", emitted),
		logging.Duration("duration", duration))
	if !cfg.Quiet {
		cli.PrintSummary(a.ErrWriter, emitted, duration, cfg.OutputFile)
	}
	return apperrors.ExitSuccess
}

// writeToFile writes the sequence to the configured file, with a progress
// display on ErrWriter unless quiet.
func (a *Application) writeToFile(ctx context.Context, seq *hanoi.Sequencer, opts cli.StreamOptions) (uint64, error) {
	cfg := a.Config
	header := cli.FileHeader{Height: cfg.Height, From: cfg.From, To: cfg.To, Via: cfg.Via}

	if cfg.Quiet {
		return cli.WriteMovesToFile(ctx, seq, cfg.OutputFile, header, opts, nil)
	}

	progress := cli.NewProgress(a.ErrWriter, hanoi.TotalMoves(cfg.Height))
	progress.Start()
	emitted, err := cli.WriteMovesToFile(ctx, seq, cfg.OutputFile, header, opts, progress.Observe)
	progress.Stop()
	return emitted, err
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
