// Package reflog provides the structured logging interface used across
// durable-ref. Backends and the CAS loop log through Logger rather than
// the standard library's log package, so that callers can route
// diagnostics (connection attempts, sweeper activity, CAS retries) into
// whatever structured logging pipeline their application already uses.
package reflog

// Level is the logging verbosity, ordered from most to least verbose.
type Level uint8

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// BaseLoggerType selects the concrete logging backend.
type BaseLoggerType uint8

const (
	Logrus BaseLoggerType = iota
)

const (
	KeyRequestID = "request_id"
	KeyBackend   = "backend"
	KeyURI       = "uri"
)

// Config configures a BaseLogger.
type Config struct {
	BaseLoggerType   BaseLoggerType
	Level            Level
	FullTimestamp    bool
	DisableTimestamp bool
	TimestampFormat  string
}

// BaseLogger mints Logger instances that share a common backend and level.
type BaseLogger interface {
	NewLogger() Logger
}

// Logger is a structured logging interface with support for various log
// levels and context-aware logging using key-value fields. With* methods
// return a new Logger carrying the added context; they do not mutate the
// receiver.
type Logger interface {
	Info(msg string)
	Infof(format string, args ...any)
	Trace(msg string)
	Tracef(format string, args ...any)
	Error(msg string)
	Errorf(format string, args ...any)
	Warn(msg string)
	Warnf(format string, args ...any)
	Debug(msg string)
	Debugf(format string, args ...any)
	Fatal(msg string)
	Fatalf(format string, args ...any)
	WithField(key string, value any) Logger
	WithFields(fields map[string]any) Logger
	WithRequestRandomID() Logger
}
