package pkglog

import (
	"log/slog"
	"strings"
)

// Format selects how log records are rendered.
type Format int

const (
	FormatFormatted Format = iota // Human-readable key=value lines.
	FormatJSON                    // Machine-readable JSON objects.
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	default:
		return "formatted"
	}
}

// ParseFormat maps a configuration value to a Format. Unrecognized values
// fall back to FormatFormatted.
func ParseFormat(v string) Format {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "json":
		return FormatJSON
	default:
		return FormatFormatted
	}
}

// Level is the minimum severity, ordered from most to least verbose.
type Level int

const (
	LevelDebug    Level = iota // Everything, including debug records.
	LevelNormal                // Informational records and above.
	LevelCritical              // Warnings and errors only.
	LevelOff                   // Nothing.
)

// levelOff sits above every level slog emits.
const levelOff = slog.LevelError + 4

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelCritical:
		return "critical"
	case LevelOff:
		return "off"
	default:
		return "normal"
	}
}

// Slog returns the slog threshold for l.
func (l Level) Slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelCritical:
		return slog.LevelWarn
	case LevelOff:
		return levelOff
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a configuration value to a Level. Unrecognized values fall
// back to LevelNormal.
func ParseLevel(v string) Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return LevelDebug
	case "critical":
		return LevelCritical
	case "off":
		return LevelOff
	default:
		return LevelNormal
	}
}

// Config is the process-wide log configuration. It is resolved once at
// startup and never mutated afterwards.
type Config struct {
	Format  Format
	Level   Level
	Service string
}
