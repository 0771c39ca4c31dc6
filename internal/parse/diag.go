package parse

import (
	"strings"

	"github.com/charmbracelet/log"
)

// Severity of a parser diagnostic.
type Severity int

const (
	SeverityFatal Severity = iota
	SeverityError
	SeverityWarn
	SeverityInfo
	SeverityDebug
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityError:
		return "error"
	case SeverityWarn:
		return "warn"
	case SeverityInfo:
		return "info"
	default:
		return "debug"
	}
}

// ParseSeverity maps a severity name to a Severity. Unknown names are debug.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(s) {
	case "fatal":
		return SeverityFatal
	case "error":
		return SeverityError
	case "warn", "warning":
		return SeverityWarn
	case "info":
		return SeverityInfo
	default:
		return SeverityDebug
	}
}

// Diagnostic is a message emitted by the parser.
type Diagnostic struct {
	Severity Severity
	Text     string
}

// DiagnosticHandler receives parser diagnostics.
type DiagnosticHandler func(Diagnostic)

// LogDiagnostics returns a handler that writes diagnostics to logger.
// Fatal and error messages log at error level, warnings at warn level and
// everything else at info level. Diagnostics are never turned into errors.
func LogDiagnostics(logger *log.Logger) DiagnosticHandler {
	return func(d Diagnostic) {
		// The parser terminates every message with a newline.
		msg := strings.TrimSuffix(d.Text, "\n")
		switch d.Severity {
		case SeverityFatal, SeverityError:
			logger.Error(msg)
		case SeverityWarn:
			logger.Warn(msg)
		default:
			logger.Info(msg)
		}
	}
}
