// Package config provides the configuration management for the hanoi application.
// It defines the data structure for the configuration, handles the parsing of
// command-line arguments and environment variables, and validates the result.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/hanoi/internal/errors"
	"github.com/agbru/hanoi/internal/hanoi"
	"github.com/agbru/hanoi/internal/logging"
)

const (
	// EnvPrefix is the prefix for all environment variables used by hanoi.
	EnvPrefix = "HANOI_"
)

// Output formats for the move stream.
const (
	FormatText   = "text"   // One "A->C" label per line.
	FormatJSON   = "json"   // A single JSON array of move records.
	FormatNDJSON = "ndjson" // One JSON move record per line.
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultHeight is the default number of discs.
	DefaultHeight = hanoi.DefaultHeight
	// DefaultFormat is the default output format.
	DefaultFormat = FormatText
	// DefaultTimeout bounds a CLI run; large towers take a very long time.
	DefaultTimeout = time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultMaxServerHeight caps the height the server agrees to stream
	// (2^20 - 1 moves per request).
	DefaultMaxServerHeight = 20
	// DefaultLogLevel is the default minimum log level.
	DefaultLogLevel = "info"
)

// Default poles: move the tower from A to C using B.
var (
	DefaultFrom = hanoi.A
	DefaultTo   = hanoi.C
	DefaultVia  = hanoi.B
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Height is the number of discs of the tower.
	Height int
	// From is the pole the tower starts on.
	From hanoi.Pole
	// To is the pole the tower must end on.
	To hanoi.Pole
	// Via is the spare pole.
	Via hanoi.Pole
	// Format is the output format: "text", "json" or "ndjson".
	Format string
	// Numbered prefixes each text move with its index.
	Numbered bool
	// OutputFile, if set, receives the moves instead of stdout.
	OutputFile string
	// Quiet suppresses the summary and progress display.
	Quiet bool
	// NoColor disables all color output. NO_COLOR is also respected.
	NoColor bool
	// Timeout is the maximum duration of a CLI run.
	Timeout time.Duration
	// ServerMode starts the application as an HTTP server.
	ServerMode bool
	// Port is the port to listen on in server mode.
	Port string
	// MaxServerHeight is the largest height the server streams.
	MaxServerHeight int
	// LogLevel is the minimum level of emitted log events.
	LogLevel string
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Returns:
//   - error: A ConfigError describing the first problem found, nil otherwise.
func (c AppConfig) Validate() error {
	if c.Height < 1 {
		return apperrors.NewConfigError("height must be at least 1, got %d", c.Height)
	}
	poles := []struct {
		name string
		pole hanoi.Pole
	}{{"from", c.From}, {"to", c.To}, {"via", c.Via}}
	for _, p := range poles {
		if !p.pole.Valid() {
			return apperrors.NewConfigError("invalid %s pole %q", p.name, rune(p.pole))
		}
	}
	if c.From == c.To || c.From == c.Via || c.To == c.Via {
		return apperrors.NewConfigError("poles must be distinct, got from=%s to=%s via=%s", c.From, c.To, c.Via)
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatNDJSON:
	default:
		return apperrors.NewConfigError("unrecognized format: '%s'. Valid formats are: [%s]",
			c.Format, strings.Join([]string{FormatText, FormatJSON, FormatNDJSON}, ", "))
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.MaxServerHeight < 1 {
		return apperrors.NewConfigError("max server height must be at least 1, got %d", c.MaxServerHeight)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. Flags take precedence over HANOI_* environment variables, which
// take precedence over defaults. The result is validated.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: flag.ErrHelp, a flag parsing error, or a wrapped ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.IntVar(&config.Height, "n", DefaultHeight, "Number of discs (tower height).")
	fs.TextVar(&config.From, "from", DefaultFrom, "Pole the tower starts on.")
	fs.TextVar(&config.To, "to", DefaultTo, "Pole the tower must end on.")
	fs.TextVar(&config.Via, "via", DefaultVia, "Spare pole.")
	fs.StringVar(&config.Format, "format", DefaultFormat, "Output format: text, json or ndjson.")
	fs.BoolVar(&config.Numbered, "numbered", false, "Prefix each text move with its index.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the moves to this file instead of stdout.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - moves only, no summary or progress.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.IntVar(&config.MaxServerHeight, "max-server-height", DefaultMaxServerHeight, "Largest height the server streams.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Minimum log level: debug, info, warn, error.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Format = strings.ToLower(config.Format)
	config.LogLevel = strings.ToLower(config.LogLevel)
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, apperrors.WrapError(err, "invalid configuration")
	}
	return config, nil
}
