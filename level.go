package stakkerlog

import (
	"os"
	"strings"
)

// Level defines record severities.
type Level int8

const (
	// DebugLevel defines debug severity.
	DebugLevel Level = iota
	// InfoLevel defines info severity.
	InfoLevel
	// WarnLevel defines warn severity.
	WarnLevel
	// ErrorLevel defines error severity.
	ErrorLevel
	// AuditLevel marks fixed-tag audit records; they pass every minimum
	// level short of Disabled.
	AuditLevel
	// Disabled turns a logger off.
	Disabled
	// TraceLevel defines trace severity (below DebugLevel).
	TraceLevel Level = -1
)

// ParseLevel converts a textual level into a Level value. It accepts
// "trace", "debug", "info", "warn"/"warning", "error", "audit" and
// "disabled"/"off", case insensitive.
func ParseLevel(value string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return TraceLevel, true
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	case "audit":
		return AuditLevel, true
	case "disabled", "disable", "off":
		return Disabled, true
	default:
		return InfoLevel, false
	}
}

// LevelString returns the canonical lowercase representation of a Level,
// used by the JSON sink.
func LevelString(level Level) string {
	switch level {
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case AuditLevel:
		return "audit"
	case Disabled:
		return "disabled"
	default:
		return "info"
	}
}

// LevelLabel returns the uppercase tag the line sink prints.
func LevelLabel(level Level) string {
	switch level {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case AuditLevel:
		return "AUDIT"
	default:
		return "INFO"
	}
}

// LevelFromEnv looks up key in the environment and parses it into a Level.
func LevelFromEnv(key string) (Level, bool) {
	if key == "" {
		return InfoLevel, false
	}
	value, ok := os.LookupEnv(key)
	if !ok {
		return InfoLevel, false
	}
	return ParseLevel(value)
}
