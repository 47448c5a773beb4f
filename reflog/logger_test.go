package reflog_test

import (
	"testing"

	"github.com/riverford/durable-ref/reflog"
)

func TestNewBaseLoggerDefaults(t *testing.T) {
	base := reflog.NewBaseLogger(nil)
	log := base.NewLogger()

	if log == nil {
		t.Fatal("expected a non-nil logger")
	}
}

func TestWithFieldReturnsDistinctLogger(t *testing.T) {
	base := reflog.NewBaseLogger(nil)
	root := base.NewLogger()

	child := root.WithField("backend", "memory")
	if child == root {
		t.Fatal("WithField must return a new Logger, not mutate the receiver")
	}
}

func TestWithRequestRandomIDIsUnique(t *testing.T) {
	root := reflog.NewBaseLogger(nil).NewLogger()

	a := root.WithRequestRandomID()
	b := root.WithRequestRandomID()

	if a == b {
		t.Fatal("expected two distinct logger instances")
	}
}
