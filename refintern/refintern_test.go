package refintern_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/riverford/durable-ref/refintern"
)

type handle struct {
	uri string
}

func keyOf(h *handle) string { return h.uri }

func TestInternReturnsSameCanonicalForSameKey(t *testing.T) {
	pool := refintern.New(keyOf, 0)

	a := &handle{uri: "value:mem://base/deadbeef.json"}
	b := &handle{uri: "value:mem://base/deadbeef.json"}

	canonicalA := pool.Intern(a)
	canonicalB := pool.Intern(b)

	if canonicalA != canonicalB {
		t.Fatal("expected both interns to return the same canonical pointer")
	}

	if canonicalA != a {
		t.Fatal("expected the first interned value to become canonical")
	}
}

func TestInternDistinctKeysAreIndependent(t *testing.T) {
	pool := refintern.New(keyOf, 0)

	a := &handle{uri: "value:mem://base/aaaa.json"}
	b := &handle{uri: "value:mem://base/bbbb.json"}

	if pool.Intern(a) == pool.Intern(b) {
		t.Fatal("expected distinct keys to intern independently")
	}
}

func TestIsInterned(t *testing.T) {
	pool := refintern.New(keyOf, 0)

	v := &handle{uri: "value:mem://base/deadbeef.json"}

	if pool.IsInterned(v) {
		t.Fatal("expected not interned before first Intern call")
	}

	pool.Intern(v)

	if !pool.IsInterned(v) {
		t.Fatal("expected interned after Intern call")
	}

	other := &handle{uri: "value:mem://base/deadbeef.json"}
	if !pool.IsInterned(other) {
		t.Fatal("expected is_interned true for an equal-keyed value even if not itself canonical")
	}
}

func TestPoolDoesNotKeepValuesAlive(t *testing.T) {
	pool := refintern.New(keyOf, 0)

	func() {
		v := &handle{uri: "value:mem://base/deadbeef.json"}
		pool.Intern(v)
	}()

	runtime.GC()
	runtime.GC()

	v2 := &handle{uri: "value:mem://base/deadbeef.json"}
	canonical := pool.Intern(v2)

	if canonical != v2 {
		t.Fatal("expected a fresh canonical value once the prior one was collected")
	}
}

func TestSweepGoroutineStops(t *testing.T) {
	pool := refintern.New(keyOf, 5*time.Millisecond)
	pool.Close()
}
