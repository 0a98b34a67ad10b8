package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/hanoi/internal/hanoi"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable parsed as int, or
// the default value if not set or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable parsed as bool, or
// the default value if not set. Accepts "true", "1", "yes" as true and
// "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable parsed as
// time.Duration ("5m", "30s"), or the default value if not set or invalid.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvPole returns the value of the environment variable parsed as a pole
// label, or the default value if not set or invalid.
func getEnvPole(key string, defaultVal hanoi.Pole) hanoi.Pole {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := hanoi.ParsePole(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - HANOI_N: Number of discs (int)
//   - HANOI_FROM, HANOI_TO, HANOI_VIA: Pole labels (single letter)
//   - HANOI_FORMAT: Output format (text, json, ndjson)
//   - HANOI_NUMBERED: Number text moves (bool)
//   - HANOI_OUTPUT: Output file path (string)
//   - HANOI_QUIET: Quiet mode (bool)
//   - HANOI_NO_COLOR: Disable colored output (bool)
//   - HANOI_TIMEOUT: Run timeout (duration: "5m", "30s")
//   - HANOI_SERVER: Enable server mode (bool: true/false, 1/0, yes/no)
//   - HANOI_PORT: Port for server mode (string)
//   - HANOI_MAX_SERVER_HEIGHT: Largest height the server streams (int)
//   - HANOI_LOG_LEVEL: Minimum log level (string)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "n") {
		config.Height = getEnvInt("N", config.Height)
	}
	if !isFlagSet(fs, "max-server-height") {
		config.MaxServerHeight = getEnvInt("MAX_SERVER_HEIGHT", config.MaxServerHeight)
	}
	if !isFlagSet(fs, "from") {
		config.From = getEnvPole("FROM", config.From)
	}
	if !isFlagSet(fs, "to") {
		config.To = getEnvPole("TO", config.To)
	}
	if !isFlagSet(fs, "via") {
		config.Via = getEnvPole("VIA", config.Via)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "format") {
		config.Format = getEnvString("FORMAT", config.Format)
	}
	if !isFlagSet(fs, "output", "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "log-level") {
		config.LogLevel = getEnvString("LOG_LEVEL", config.LogLevel)
	}
	if !isFlagSet(fs, "numbered") {
		config.Numbered = getEnvBool("NUMBERED", config.Numbered)
	}
	if !isFlagSet(fs, "quiet", "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
}
