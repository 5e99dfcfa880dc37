// Package logging builds the logfmt loggers shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// EnvLevel names the environment variable read by LevelFromEnv.
const EnvLevel = "CGPA_LOG_LEVEL"

// Level is a minimum log severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// ParseLevel resolves a level name. Blank input selects info.
func ParseLevel(value string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(value))) {
	case "":
		return LevelInfo, nil
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo:
		return LevelInfo, nil
	case LevelWarn, "warning":
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	default:
		return "", fmt.Errorf("unknown log level %q", value)
	}
}

// LevelFromEnv reads CGPA_LOG_LEVEL, falling back to info when the value is
// missing or unknown.
func LevelFromEnv() Level {
	lvl, err := ParseLevel(os.Getenv(EnvLevel))
	if err != nil {
		return LevelInfo
	}
	return lvl
}

func (l Level) option() level.Option {
	switch l {
	case LevelDebug:
		return level.AllowDebug()
	case LevelWarn:
		return level.AllowWarn()
	case LevelError:
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

// New returns a synchronized logfmt logger writing to w with timestamp,
// caller and service fields, filtered at lvl.
func New(w io.Writer, service string, lvl Level) gokitlog.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := gokitlog.NewLogfmtLogger(gokitlog.NewSyncWriter(w))
	logger = level.NewFilter(logger, lvl.option())
	logger = gokitlog.With(logger, "ts", gokitlog.DefaultTimestampUTC, "caller", gokitlog.DefaultCaller)
	if service = strings.TrimSpace(service); service != "" {
		logger = gokitlog.With(logger, "service", service)
	}
	return logger
}

// Nop returns a logger that discards everything.
func Nop() gokitlog.Logger {
	return gokitlog.NewNopLogger()
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger gokitlog.Logger) gokitlog.Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}
