package reflog

import (
	"errors"
	"strings"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

func (l *Level) String() string {
	switch *l {
	case FatalLevel:
		return "Fatal"
	case ErrorLevel:
		return "Error"
	case WarnLevel:
		return "Warn"
	case InfoLevel:
		return "Info"
	case DebugLevel:
		return "Debug"
	case TraceLevel:
		return "Trace"
	default:
		return "Unknown"
	}
}

// Unmarshal lets Level be loaded from a config string such as a "default"
// struct tag or an environment variable value.
func (l *Level) Unmarshal(text string) error {
	switch strings.ToLower(text) {
	case "fatal":
		*l = FatalLevel
	case "error":
		*l = ErrorLevel
	case "warn":
		*l = WarnLevel
	case "info":
		*l = InfoLevel
	case "debug":
		*l = DebugLevel
	case "trace":
		*l = TraceLevel
	default:
		return ErrInvalidLogLevel
	}

	return nil
}

func (l *Level) UnmarshalText(text []byte) error {
	return l.Unmarshal(string(text))
}
