package reflog

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// logrusAdapter implements Logger on top of a logrus.Entry.
type logrusAdapter struct {
	entry *logrus.Entry
}

// baseLogrus is the BaseLogger backed by a shared logrus.Logger.
type baseLogrus struct {
	logger *logrus.Logger
}

// NewBaseLogger configures and returns a BaseLogger. A nil config applies
// defaults suitable for local development (debug level, no timestamps).
func NewBaseLogger(config *Config) BaseLogger {
	if config == nil {
		config = &Config{
			BaseLoggerType:   Logrus,
			Level:            DebugLevel,
			FullTimestamp:    false,
			TimestampFormat:  "2006-01-02 15:04:05",
			DisableTimestamp: true,
		}
	}

	base := logrus.New()

	switch config.BaseLoggerType {
	case Logrus:
		base.SetLevel(logrus.TraceLevel - logrus.Level(config.Level))
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    config.FullTimestamp,
			TimestampFormat:  config.TimestampFormat,
			DisableTimestamp: config.DisableTimestamp,
		})
	default:
		panic("reflog: unsupported base logger type")
	}

	return &baseLogrus{logger: base}
}

// NewLogger returns a fresh Logger rooted at the base logger.
func (b *baseLogrus) NewLogger() Logger {
	return &logrusAdapter{entry: logrus.NewEntry(b.logger)}
}

func (l *logrusAdapter) Info(msg string)  { l.entry.Info(msg) }
func (l *logrusAdapter) Error(msg string) { l.entry.Error(msg) }
func (l *logrusAdapter) Warn(msg string)  { l.entry.Warn(msg) }
func (l *logrusAdapter) Debug(msg string) { l.entry.Debug(msg) }
func (l *logrusAdapter) Fatal(msg string) { l.entry.Fatal(msg) }
func (l *logrusAdapter) Trace(msg string) { l.entry.Trace(msg) }

func (l *logrusAdapter) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *logrusAdapter) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
func (l *logrusAdapter) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *logrusAdapter) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *logrusAdapter) Fatalf(format string, args ...any) { l.entry.Fatalf(format, args...) }
func (l *logrusAdapter) Tracef(format string, args ...any) { l.entry.Tracef(format, args...) }

// WithField returns a new Logger with key=value added to its context.
func (l *logrusAdapter) WithField(key string, value any) Logger {
	return &logrusAdapter{entry: l.entry.WithField(key, value)}
}

// WithFields returns a new Logger with every entry of fields added to its context.
func (l *logrusAdapter) WithFields(fields map[string]any) Logger {
	return &logrusAdapter{entry: l.entry.WithFields(fields)}
}

// WithRequestRandomID returns a new Logger carrying a freshly generated
// correlation ID, useful for tracing one CAS retry loop across log lines.
func (l *logrusAdapter) WithRequestRandomID() Logger {
	return &logrusAdapter{entry: l.entry.WithField(KeyRequestID, uuid.NewString())}
}
