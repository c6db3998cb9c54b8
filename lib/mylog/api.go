// Package mylog writes leveled logs: human readable via zap when running locally and
// one json entry per line when running on Google Cloud.
package mylog

import "context"

type Severity string

const (
	SeverityDebug Severity = "DEBUG"
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// New creates a logger for a component; the backend is chosen at startup.
var New func(componentName string) Logger

// Logger logs in the scope of a trace label, typically the uid of the cart being handled.
type Logger interface {
	Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any)
}
